package mcpserver

// TemplateContract describes the highlight template syntax that LLM
// consumers should follow when writing or editing templates.
const TemplateContract = `# Kohl Highlight Template Contract

A template renders one highlight group (a run of merged highlights)
into a Markdown block.

## Syntax

` + "```" + `
{{key}}                    insert a variable
{{key|filter1|filter2:arg}} insert a variable through a filter chain
{{#key}} body {{/key}}     render body only when key has a value
{{#if key}} body {{/if}}   same, alternative form
` + "```" + `

Anything that does not match these forms is kept as literal text, so a
broken tag never breaks rendering.

## Variables

highlight, highlightPlain, note, notes, pageno, pageref, date,
datetime, chapter, isFirstInChapter, color, colorClass, drawer, uid.

## Filters

stripHTML, truncate:N, br2nl, quote, lower, upper, escape, escapeHtml,
unescapeHtml, dateFormat:PATTERN (also dateFormat:locale and
dateFormat:daily-note). Unknown filters are ignored.

## Rules

1. A template MUST reference {{highlight}} or {{highlightPlain}}.
2. A template MUST reference {{pageno}}.
3. Rendered notes are blockquoted automatically unless the template
   line holding {{note}} already starts with ">".
4. Conditional blocks nest at most 20 levels deep.

## Example

` + "```" + `
{{#isFirstInChapter}}## {{chapter}}

{{/isFirstInChapter}}{{highlight}}
{{#note}}
{{note}}
{{/note}}
*p. {{pageno}}, {{date}}*
` + "```" + `
`

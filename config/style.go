package config

// DefaultStyleTemplate styles the control and highlighted elements.
// Placeholders {{.ControlID}} and {{.MarkerClass}} are the only free
// variables; everything else is presentation and may be replaced wholesale
// by Config.StyleTemplate.
const DefaultStyleTemplate = `
:root {
  --dyncontent-base-color: rgb(8 117 225);
}

select#{{.ControlID}} {
  margin: 0 0 20px 20px;
  box-sizing: border-box;
  appearance: none;
  float: right;
  background-color: white;
  border: thin solid var(--dyncontent-base-color);
  border-radius: 5px;
  display: inline-block;
  font: inherit;
  font-weight: bold;
  color: var(--dyncontent-base-color);
  line-height: 1.5em;
  padding: 0.5em 3.5em 0.5em 1em;
}

select#{{.ControlID}}:focus {
  border-color: var(--dyncontent-base-color);
  outline: 0;
}

.{{.MarkerClass}}, .{{.MarkerClass}} * {
  color: var(--dyncontent-base-color) !important;
  font-weight: bold;
}
`

package harvest

import "strings"

// DefaultRuleWidth is the length of the separator line under the header.
const DefaultRuleWidth = 60

// TableLayout configures RenderTable.
// Widths apply to the first two columns; the email column is not padded.
type TableLayout struct {
	Labels    [3]string
	Widths    [2]int
	RuleWidth int
}

// PhoneLayout renders name, extension and email columns.
var PhoneLayout = TableLayout{
	Labels:    [3]string{"姓名", "分機", "Email"},
	Widths:    [2]int{15, 15},
	RuleWidth: DefaultRuleWidth,
}

// TitleLayout renders name, job title and email columns.
var TitleLayout = TableLayout{
	Labels:    [3]string{"姓名", "職稱", "Email"},
	Widths:    [2]int{15, 30},
	RuleWidth: DefaultRuleWidth,
}

// RenderTable formats contacts as a header line, a separator rule and one
// line per contact. Every line ends with a newline. Content wider than
// its column overflows instead of being truncated.
func RenderTable(contacts []*Contact, layout TableLayout) string {
	ruleWidth := layout.RuleWidth
	if ruleWidth <= 0 {
		ruleWidth = DefaultRuleWidth
	}

	var b strings.Builder
	writeRow(&b, layout, layout.Labels[0], layout.Labels[1], layout.Labels[2])
	b.WriteString(strings.Repeat("-", ruleWidth))
	b.WriteByte('\n')
	for _, c := range contacts {
		writeRow(&b, layout, c.Name, c.Secondary, c.Email)
	}
	return b.String()
}

func writeRow(b *strings.Builder, layout TableLayout, first, second, third string) {
	b.WriteString(PadToWidth(first, layout.Widths[0]))
	b.WriteByte(' ')
	b.WriteString(PadToWidth(second, layout.Widths[1]))
	b.WriteByte(' ')
	b.WriteString(third)
	b.WriteByte('\n')
}

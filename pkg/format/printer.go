package format

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/leapstack-labs/geosql/pkg/token"
)

// Printer accumulates formatted SQL.
type Printer struct {
	output *bytes.Buffer
}

func newPrinter() *Printer {
	return &Printer{output: &bytes.Buffer{}}
}

// String returns the formatted output.
func (p *Printer) String() string {
	return p.output.String()
}

func (p *Printer) write(s string) {
	p.output.WriteString(s)
}

func (p *Printer) space() {
	p.output.WriteByte(' ')
}

// kw prints keywords separated by spaces.
func (p *Printer) kw(tokens ...token.TokenType) {
	for i, t := range tokens {
		if i > 0 {
			p.space()
		}
		p.write(t.String())
	}
}

// formatList prints count items separated by ", ".
func (p *Printer) formatList(count int, format func(i int)) {
	for i := 0; i < count; i++ {
		if i > 0 {
			p.write(", ")
		}
		format(i)
	}
}

var bareIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*$`)

// ident writes an identifier, quoting it when required.
func (p *Printer) ident(name string, quoted bool) {
	if !quoted && bareIdent.MatchString(name) && token.LookupIdent(strings.ToLower(name)) == token.IDENT {
		p.write(name)
		return
	}
	p.write(`"` + strings.ReplaceAll(name, `"`, `""`) + `"`)
}

// stringLiteral writes s as a single-quoted SQL string.
func (p *Printer) stringLiteral(s string) {
	p.write("'" + strings.ReplaceAll(s, "'", "''") + "'")
}

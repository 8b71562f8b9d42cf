package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/garyjia/forecast-reporter/pkg/utils"
)

// Prompter asks interactive questions on a line-oriented terminal
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a new Prompter
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Ask prints label and returns the trimmed answer, or def when the answer is empty
func (p *Prompter) Ask(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}

	line, err := p.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read answer: %w", err)
		}
		if line == "" {
			return "", ErrAborted
		}
	}

	answer := strings.TrimSpace(line)
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// AskDate asks for an MM/DD/YYYY date until a valid one is entered. An empty
// answer selects def when it is set.
func (p *Prompter) AskDate(label string, def time.Time) (time.Time, error) {
	defText := ""
	if !def.IsZero() {
		defText = def.Format(utils.WeekDateLayout)
	}

	for {
		answer, err := p.Ask(label, defText)
		if err != nil {
			return time.Time{}, err
		}
		date, err := utils.ParseWeekDate(answer)
		if err == nil {
			return date, nil
		}
		fmt.Fprintf(p.out, "%q is not a date, use MM/DD/YYYY\n", answer)
	}
}

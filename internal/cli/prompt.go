package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/mattn/go-isatty"
	"github.com/tacogips/tpy/internal/template/model"
)

// newPrompter returns a survey prompter when in is a terminal and a plain
// line reader otherwise.
func newPrompter(in io.Reader, out io.Writer) model.Prompter {
	if f, ok := in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return &surveyPrompter{out: out}
	}
	return newLinePrompter(in, out)
}

// surveyPrompter asks through interactive survey inputs.
type surveyPrompter struct {
	out io.Writer
}

func (p *surveyPrompter) Ask(message string) (string, error) {
	var answer string
	prompt := &survey.Input{Message: strings.TrimSuffix(message, ":")}
	if err := survey.AskOne(prompt, &answer); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", io.EOF
		}
		return "", err
	}
	return answer, nil
}

func (p *surveyPrompter) Say(line string) {
	fmt.Fprintln(p.out, line)
}

// linePrompter reads one answer per line, for piped input.
type linePrompter struct {
	r   *bufio.Reader
	out io.Writer
}

func newLinePrompter(in io.Reader, out io.Writer) *linePrompter {
	return &linePrompter{r: bufio.NewReader(in), out: out}
}

// Ask returns io.EOF once the input is exhausted without an answer.
func (p *linePrompter) Ask(message string) (string, error) {
	fmt.Fprintf(p.out, "%s ", message)
	line, err := p.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (p *linePrompter) Say(line string) {
	fmt.Fprintln(p.out, line)
}

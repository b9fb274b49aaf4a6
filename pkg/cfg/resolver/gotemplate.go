// Package resolver replaces template placeholders in configuration values.
package resolver

import (
	"bytes"
	"fmt"
	"os"
	"text/template"
	"time"

	"github.com/google/uuid"
)

const (
	envFunc   = "env"
	uuidFunc  = "uuid"
	todayFunc = "today"
)

// GoTemplate resolves Go text/template placeholders.
//
// The following data is available in templates:
//   - .Root: absolute path of the project directory
//   - .Pkg: content of the package file, e.g. {{ .Pkg.name }}
//
// The following functions are available:
//   - env NAME: value of an environment variable, fails if it is undefined
//   - uuid: a random UUID
//   - today LAYOUT: the current date formatted with a Go time layout
type GoTemplate struct {
	templateVars map[string]any
	funcMap      template.FuncMap
}

func newUUID() string {
	return uuid.NewString()
}

func lookupEnv(envVarName string) (string, error) {
	envVal, exist := os.LookupEnv(envVarName)
	if !exist {
		return "", fmt.Errorf("environment variable %q is undefined", envVarName)
	}

	return envVal, nil
}

// NewGoTemplate returns a resolver. now is called once, all today
// placeholders resolve to the same date.
func NewGoTemplate(root string, pkg map[string]any, now func() time.Time) *GoTemplate {
	today := now()

	return &GoTemplate{
		templateVars: map[string]any{
			"Root": root,
			"Pkg":  pkg,
		},
		funcMap: template.FuncMap{
			envFunc:   lookupEnv,
			uuidFunc:  newUUID,
			todayFunc: today.Format,
		},
	}
}

// Resolve executes in as template and returns the result.
func (s *GoTemplate) Resolve(in string) (string, error) {
	t, err := template.New("sitetask").
		Funcs(s.funcMap).
		Option("missingkey=error").
		Parse(in)
	if err != nil {
		return "", fmt.Errorf("failed parsing go template: %w", err)
	}

	output := new(bytes.Buffer)
	if err = t.Execute(output, s.templateVars); err != nil {
		return "", fmt.Errorf("failed evaluating template: %w", err)
	}

	return output.String(), nil
}

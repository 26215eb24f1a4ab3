package core

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"strings"
	"text/template"
)

var expandFuncs = template.FuncMap{
	"env": os.Getenv,
	"envOr": func(name, fallback string) string {
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		return fallback
	},
	"exec": func(line string) (string, error) {
		// pipelines need a shell
		if strings.Contains(line, " | ") {
			out, err := exec.Command("sh", "-c", line).Output()
			return strings.TrimSpace(string(out)), err
		}

		args := strings.Fields(line)
		if len(args) < 1 {
			return "", errors.New("no command provided")
		}

		out, err := exec.Command(args[0], args[1:]...).Output()
		return strings.TrimSpace(string(out)), err
	},
}

// expand evaluates template expressions in value, e.g. {{ env "PGPASSWORD" }}.
func expand(value string) (string, error) {
	tmpl, err := template.New("expand_variables").Funcs(expandFuncs).Parse(value)
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	err = tmpl.Execute(&out, nil)
	if err != nil {
		return "", err
	}

	return out.String(), nil
}

// expandOrDefault silently suppresses errors.
func expandOrDefault(value string) string {
	ex, err := expand(value)
	if err != nil {
		return value
	}
	return ex
}

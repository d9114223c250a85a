package main

import (
	"fmt"
	"io"

	"github.com/deppfellow/ressourcerie/internal/lib/email"
	"github.com/spf13/cobra"
)

var previewEmailCmd = &cobra.Command{
	Use:       "preview-email [template]",
	Short:     "Render an email template with sample data to stdout",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(email.TemplateDemandApproved)},
	RunE: func(cmd *cobra.Command, args []string) error {
		name := email.TemplateDemandApproved
		if len(args) == 1 {
			name = email.Template(args[0])
		}
		return previewEmail(cmd.OutOrStdout(), name)
	},
}

func previewEmail(w io.Writer, name email.Template) error {
	data, ok := email.PreviewData[name]
	if !ok {
		return fmt.Errorf("no preview data for template %q", name)
	}

	body, err := email.Render(name, data)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, body)
	return err
}

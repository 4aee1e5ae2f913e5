package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chriserin/pickle/internal/db"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the discovery journal in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return RunInit(cmd.OutOrStdout(), cfg.Journal)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func RunInit(w io.Writer, journal string) error {
	dir := filepath.Dir(journal)
	if dir != "." {
		_, err := os.Stat(dir)
		dirExists := err == nil
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		if dirExists {
			fmt.Fprintf(w, "%s/ already exists\n", dir)
		} else {
			fmt.Fprintf(w, "%s/ created\n", dir)
		}
	}

	_, err := os.Stat(journal)
	dbExists := err == nil
	sqlDB, err := db.Open(journal)
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	sqlDB.Close()
	if dbExists {
		fmt.Fprintf(w, "%s already exists\n", journal)
	} else {
		fmt.Fprintf(w, "%s created\n", journal)
	}

	msgs, err := ensureGitignore(filepath.ToSlash(journal))
	if err != nil {
		return fmt.Errorf("updating .gitignore: %w", err)
	}
	for _, msg := range msgs {
		fmt.Fprintln(w, msg)
	}

	return nil
}

func ensureGitignore(entry string) ([]string, error) {
	data, err := os.ReadFile(".gitignore")
	if os.IsNotExist(err) {
		if err := os.WriteFile(".gitignore", []byte(entry+"\n"), 0o644); err != nil {
			return nil, err
		}
		return []string{".gitignore created", entry + " added to .gitignore"}, nil
	}
	if err != nil {
		return nil, err
	}

	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == entry {
			return []string{entry + " already in .gitignore"}, nil
		}
	}

	content := string(data)
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += entry + "\n"

	if err := os.WriteFile(".gitignore", []byte(content), 0o644); err != nil {
		return nil, err
	}
	return []string{entry + " added to .gitignore"}, nil
}

// requireJournal fails when init has not created the journal.
func requireJournal(journal string) error {
	if _, err := os.Stat(journal); os.IsNotExist(err) {
		return fmt.Errorf("run `pickle init` first")
	}
	return nil
}

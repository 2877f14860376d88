package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

const (
	cssInput  = "assets/css/input.css"
	cssOutput = "assets/css/app.css"
)

func GenCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate templ components and compile the Tailwind stylesheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(force)
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "rebuild even when up to date")
	return cmd
}

func runGen(force bool) error {
	err := runTempl()
	if err != nil {
		return err
	}
	return runTailwind(force)
}

// runTempl regenerates *_templ.go from .templ sources via the go.mod tool directive
func runTempl() error {
	start := time.Now()
	templ := exec.Command("go", "tool", "templ", "generate", "-path", "internal/ui")
	templ.Stdout = os.Stdout
	templ.Stderr = os.Stderr
	if err := templ.Run(); err != nil {
		return fmt.Errorf("templ generate: %w", err)
	}

	fmt.Printf("[templ] done (%s)\n", time.Since(start).Round(time.Millisecond))
	return nil
}

func runTailwind(force bool) error {
	if _, err := exec.LookPath("tailwindcss"); err != nil {
		fmt.Println("Missing binary: tailwindcss")
		fmt.Println("Install from https://tailwindcss.com/blog/standalone-cli")
		return fmt.Errorf("tailwindcss not found")
	}

	if !force && isUpToDate(cssOutput, stylesheetInputs()) {
		fmt.Println("[tailwindcss] skipped")
		return nil
	}

	start := time.Now()
	tw := exec.Command("tailwindcss", "-i", cssInput, "-o", cssOutput, "--minify")
	tw.Stdout = os.Stdout
	tw.Stderr = os.Stderr
	if err := tw.Run(); err != nil {
		return fmt.Errorf("tailwindcss: %w", err)
	}

	fmt.Printf("[tailwindcss] done (%s)\n", time.Since(start).Round(time.Millisecond))
	return nil
}

// stylesheetInputs lists every file whose class names feed the stylesheet
func stylesheetInputs() []string {
	inputs := []string{cssInput}
	_ = filepath.WalkDir("internal/ui", func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".templ") || (strings.HasSuffix(path, ".go") && !strings.HasSuffix(path, "_test.go")) {
			inputs = append(inputs, path)
		}
		return nil
	})
	return inputs
}

func isUpToDate(output string, inputs []string) bool {
	outInfo, err := os.Stat(output)
	if err != nil {
		return false
	}
	outMod := outInfo.ModTime()

	for _, input := range inputs {
		inInfo, err := os.Stat(input)
		if err != nil {
			continue
		}
		if inInfo.ModTime().After(outMod) {
			return false
		}
	}
	return true
}

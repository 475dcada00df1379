package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hwidmann/taskcanvas/pkg/problem"
	"github.com/hwidmann/taskcanvas/pkg/render"
	"github.com/hwidmann/taskcanvas/pkg/schema"
)

// dotCommand creates the dot command exporting tree/graph figure specs as
// Graphviz DOT. This is a debugging aid for inspecting structural payloads
// independently of the built-in force-directed renderer.
func (c *CLI) dotCommand() *cobra.Command {
	var (
		taskNumber int
		output     string
		asSVG      bool
	)

	cmd := &cobra.Command{
		Use:   "dot [config.json]",
		Short: "Export a tree or graph figure spec as Graphviz DOT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(args[0])
			if err != nil {
				return err
			}
			doc, violations := schema.Build(cfg)
			if len(violations) > 0 {
				printViolations(violations)
				return fmt.Errorf("%d schema violations", len(violations))
			}

			spec, number, err := findViz(doc, taskNumber)
			if err != nil {
				return err
			}

			dot, err := render.ToDOT(spec)
			if err != nil {
				return fmt.Errorf("task %d: %w", number, err)
			}

			data := []byte(dot)
			if asSVG {
				data, err = render.RenderDOT(cmd.Context(), dot)
				if err != nil {
					return fmt.Errorf("task %d: %w", number, err)
				}
			}

			if output == "" {
				_, err = os.Stdout.Write(data)
				return err
			}
			if err := writeFile(output, data); err != nil {
				return err
			}
			printFile(output)
			return nil
		},
	}

	cmd.Flags().IntVarP(&taskNumber, "task", "t", 0, "task number (default: first task with a tree or graph figure)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&asSVG, "svg", false, "render the DOT with graphviz instead of printing it")

	return cmd
}

// findViz locates the visualization spec to export. When number is zero the
// first tree or graph figure in document order is used.
func findViz(doc problem.Document, number int) (*problem.VizSpec, int, error) {
	for _, task := range doc.Tasks {
		if task.Viz == nil {
			continue
		}
		if number != 0 {
			if task.Number == number {
				return task.Viz, task.Number, nil
			}
			continue
		}
		if task.Viz.Type == problem.VizTree || task.Viz.Type == problem.VizGraph {
			return task.Viz, task.Number, nil
		}
	}
	if number != 0 {
		return nil, 0, fmt.Errorf("task %d has no visualization", number)
	}
	return nil, 0, fmt.Errorf("no tree or graph figure in document")
}

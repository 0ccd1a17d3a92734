package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AlexG0311/sportzone/internal/catalog"
	"github.com/AlexG0311/sportzone/internal/printer"
	"github.com/AlexG0311/sportzone/internal/wizard"
)

// errAborted is returned when the user quits the wizard.
var errAborted = errors.New("aborted")

func newVenueCreateCmd(opts *globalOptions) *cobra.Command {
	var fromFile string
	var concurrency int
	var yes bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Publish a new venue",
		Long: `Publish a new venue through the six-step wizard:

  1. Name
  2. Description
  3. Location (address and coordinates)
  4. Pricing & capacity
  5. Images (the first image is the cover unless another is marked primary)
  6. Summary and submit

On submit every image is uploaded, the venue is created, and one image
record is attached per image. If any stage fails, what was already created
is rolled back and the draft is kept so the submission can be retried.

With --from-file the draft is read from a YAML file instead of prompts
(see 'sportzone init' for an example).

At any prompt type '<' to go back a step or ':q' to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, "create venue", func(ctx context.Context, a *app) error {
				if _, err := a.holder.RequireUser(); err != nil {
					return err
				}

				pipeline := wizard.NewPipeline(a.client, a.uploader,
					wizard.WithConcurrency(concurrency),
					wizard.WithPipelineLogger(a.logger),
				)
				ctrl := wizard.NewController(a.holder, &reportingSubmitter{next: pipeline})
				p := newPrompter(cmd)

				var err error
				if fromFile != "" {
					err = createFromFile(ctx, cmd, ctrl, p, fromFile, yes)
				} else {
					err = runWizard(ctx, cmd, ctrl, p)
				}
				if errors.Is(err, errAborted) {
					printer.Info("Aborted; nothing was submitted\n")
					return nil
				}
				if err != nil {
					return err
				}

				res := ctrl.Result()
				printer.Success("Created venue #%d %s with %d image(s)\n", res.Venue.ID, res.Venue.Name, len(res.Images))
				printer.Hint("View it with: sportzone venue show %d\n", res.Venue.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&fromFile, "from-file", "f", "", "Read the draft from a YAML file")
	cmd.Flags().IntVar(&concurrency, "concurrency", wizard.DefaultUploadConcurrency, "Parallel image uploads")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Submit without asking for confirmation (--from-file only)")
	return cmd
}

// reportingSubmitter prints progress around the pipeline.
type reportingSubmitter struct {
	next wizard.Submitter
}

func (s *reportingSubmitter) Submit(ctx context.Context, d *wizard.Draft) (*wizard.Submission, error) {
	printer.Step("Uploading %d image(s) and creating the venue...\n", len(d.Images))
	return s.next.Submit(ctx, d)
}

func createFromFile(ctx context.Context, cmd *cobra.Command, ctrl *wizard.Controller, p *prompter, path string, yes bool) error {
	file, err := wizard.LoadDraftFile(path)
	if err != nil {
		return err
	}
	if err := file.Apply(ctrl); err != nil {
		return err
	}
	if err := wizard.RunToSummary(ctrl); err != nil {
		return err
	}

	showSummary(cmd, ctrl)
	if !yes {
		ok, err := confirm(p, "Create this venue?")
		if err != nil {
			return err
		}
		if !ok {
			return errAborted
		}
	}
	return ctrl.Advance(ctx)
}

func confirm(p *prompter, question string) (bool, error) {
	answer, err := p.ask(question+" [y/N]", "n")
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

func showSummary(cmd *cobra.Command, ctrl *wizard.Controller) {
	draft := ctrl.Draft()
	printer.Header("Summary %s", printer.ProgressBar(int(ctrl.Step()), wizard.TotalSteps, 12))
	catalog.WriteFields(cmd.OutOrStdout(), draft.Summary())
	printer.Println()
}

// runWizard drives the controller from line prompts until the venue is
// submitted or the user quits. Input problems are shown and the same step is
// asked again.
func runWizard(ctx context.Context, cmd *cobra.Command, ctrl *wizard.Controller, p *prompter) error {
	for {
		step := ctrl.Step()
		if step != wizard.StepSummary {
			printer.Header("Step %d/%d: %s  %s", int(step), wizard.TotalSteps, step, printer.ProgressBar(int(step), wizard.TotalSteps, 12))
		}

		back, err := askStep(cmd, ctrl, p, step)
		if errors.Is(err, errAborted) || errors.Is(err, errInputClosed) {
			return err
		}
		if err != nil {
			printer.Warning("%s\n", inputProblem(err))
			continue
		}
		if back {
			if err := ctrl.Retreat(); err != nil {
				printer.Warning("%v\n", err)
			}
			continue
		}

		if err := ctrl.Advance(ctx); err != nil {
			var vErr *wizard.ValidationError
			var subErr *wizard.SubmissionError
			switch {
			case errors.As(err, &subErr) && ctx.Err() == nil:
				printer.Warning("%v\n", err)
				printer.Hint("%s\nThe draft was kept. Answer y to retry, '<' to change it, or ':q' to quit.\n", wizard.DescribeCleanup(err))
			case errors.As(err, &vErr) && vErr.Err == nil:
				printer.Warning("%s\n", vErr.Message)
			default:
				return err
			}
			continue
		}
		if ctrl.Result() != nil {
			return nil
		}
	}
}

func inputProblem(err error) string {
	var vErr *wizard.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message
	}
	return err.Error()
}

// askStep prompts for the fields of step. It reports back=true when the user
// asked to return to the previous step.
func askStep(cmd *cobra.Command, ctrl *wizard.Controller, p *prompter, step wizard.Step) (bool, error) {
	draft := ctrl.Draft()

	ask := func(label, def string) (string, bool, error) {
		answer, err := p.ask(label, def)
		if err != nil {
			return "", false, err
		}
		switch answer {
		case ":q":
			return "", false, errAborted
		case "<":
			return "", true, nil
		}
		return answer, false, nil
	}
	askField := func(f wizard.Field, label, def string) (bool, error) {
		v, back, err := ask(label, def)
		if err != nil || back {
			return back, err
		}
		return false, ctrl.UpdateField(f, v)
	}

	switch step {
	case wizard.StepName:
		return askField(wizard.FieldName, "Venue name", draft.Name)

	case wizard.StepDescription:
		return askField(wizard.FieldDescription, "Description", draft.Description)

	case wizard.StepLocation:
		if back, err := askField(wizard.FieldAddress, "Address", draft.Address); back || err != nil {
			return back, err
		}
		def := ""
		if draft.Location != nil {
			def = fmt.Sprintf("%.6f,%.6f", draft.Location.Latitude, draft.Location.Longitude)
		}
		v, back, err := ask("Coordinates (lat,lng)", def)
		if err != nil || back || v == "" {
			return back, err
		}
		lat, lng, err := parseCoordinates(v)
		if err != nil {
			return false, err
		}
		return false, ctrl.SetLocation(lat, lng)

	case wizard.StepPricing:
		if back, err := askField(wizard.FieldPrice, "Price per hour", draft.Price); back || err != nil {
			return back, err
		}
		return askField(wizard.FieldCapacity, "Capacity", draft.Capacity)

	case wizard.StepImages:
		return askImages(cmd, ctrl, ask)

	case wizard.StepSummary:
		showSummary(cmd, ctrl)
		v, back, err := ask("Create this venue? [y/N]", "n")
		if err != nil || back {
			return back, err
		}
		if !strings.EqualFold(v, "y") && !strings.EqualFold(v, "yes") {
			printer.Hint("Type '<' to go back and change something, or ':q' to quit\n")
			return false, &wizard.ValidationError{Step: step, Message: "submission not confirmed"}
		}
		return false, nil
	}
	return false, fmt.Errorf("unknown step %s", step)
}

// askImages loops over image commands until the user submits an empty line.
func askImages(cmd *cobra.Command, ctrl *wizard.Controller, ask func(label, def string) (string, bool, error)) (bool, error) {
	printer.Hint("Enter an image path to add it, 'p N' to make image N the cover, 'r N' to remove it, or an empty line to continue\n")
	for {
		for i, img := range ctrl.Draft().Images {
			mark := " "
			if img.Primary {
				mark = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %s %d. %s\n", mark, i+1, img.Ref)
		}

		v, back, err := ask("Image", "")
		if err != nil || back {
			return back, err
		}
		if v == "" {
			return false, nil
		}

		var op string
		var n int
		if _, scanErr := fmt.Sscanf(v, "%s %d", &op, &n); scanErr == nil && (op == "p" || op == "r") {
			if op == "p" {
				err = ctrl.SetPrimaryImage(n - 1)
			} else {
				err = ctrl.RemoveImage(n - 1)
			}
		} else {
			err = ctrl.AddImage(v)
		}
		if err != nil {
			printer.Warning("%v\n", err)
		}
	}
}

func parseCoordinates(s string) (float64, float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("coordinates must look like 9.3047,-75.3978")
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude %q: %w", parts[0], err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude %q: %w", parts[1], err)
	}
	return lat, lng, nil
}

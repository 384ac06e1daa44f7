package text

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/olusolaa/rds-power-scheduler/internal/core/domain"
	"github.com/olusolaa/rds-power-scheduler/internal/core/ports"
)

const ReporterTypeText = "text"

type Config struct {
	NoColor bool `mapstructure:"no_color"`
}

type Reporter struct {
	config Config
	writer io.Writer
	logger ports.Logger
}

func NewReporter(cfg Config, logger ports.Logger) (*Reporter, error) {
	if cfg.NoColor || !isTerminal(os.Stdout) {
		color.NoColor = true
	}

	return &Reporter{
		config: cfg,
		writer: os.Stdout,
		logger: logger,
	}, nil
}

func isTerminal(f *os.File) bool {
	stat, _ := f.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

func (r *Reporter) Report(ctx context.Context, summary *domain.RunSummary) error {
	outcomes := append([]domain.ResourceOutcome(nil), summary.Outcomes...)
	sort.SliceStable(outcomes, func(i, j int) bool {
		return outcomes[i].Resource.Key() < outcomes[j].Resource.Key()
	})

	tw := tabwriter.NewWriter(r.writer, 0, 8, 2, ' ', 0)
	defer tw.Flush()

	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	fmt.Fprintf(tw, "RDS Power Schedule Report (%s)\n", summary.Action)
	fmt.Fprintln(tw, "==============================")
	fmt.Fprintf(tw, "Run ID:\t%s\n", summary.RunID)
	if summary.AccountID != "" {
		fmt.Fprintf(tw, "Account:\t%s\n", summary.AccountID)
	}
	fmt.Fprintln(tw)

	if len(outcomes) == 0 {
		fmt.Fprintln(tw, "No matching resources found.")
	} else {
		fmt.Fprintln(tw, "Result\tKind\tRegion\tIdentifier\tDetails")
		fmt.Fprintln(tw, "------\t----\t------\t----------\t-------")
	}

	for _, outcome := range outcomes {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		var resultStr string
		details := decisionDetails(outcome)
		switch outcome.Result {
		case domain.ResultSucceeded:
			resultStr = green("[OK]")
		case domain.ResultSkipped:
			resultStr = yellow("[SKIPPED]")
		case domain.ResultFailed:
			resultStr = red("[FAILED]")
			details = outcome.ErrorDetail
		default:
			resultStr = "[UNKNOWN]"
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			resultStr, outcome.Resource.Kind, outcome.Resource.Region,
			outcome.Resource.Identifier, details)
	}

	if len(summary.RegionErrors) > 0 {
		fmt.Fprintln(tw, "\nRegion Failures:")
		fmt.Fprintln(tw, "---------------")
		regions := make([]string, 0, len(summary.RegionErrors))
		for region := range summary.RegionErrors {
			regions = append(regions, region)
		}
		sort.Strings(regions)
		for _, region := range regions {
			fmt.Fprintf(tw, "%s\t%s\n", red(region), summary.RegionErrors[region])
		}
	}

	fmt.Fprintln(tw, "\nSummary:")
	fmt.Fprintln(tw, "-------")
	fmt.Fprintf(tw, "Total Resources:\t%d\n", summary.Total())
	fmt.Fprintf(tw, "Succeeded:\t%s\n", green(summary.SucceededCount))
	fmt.Fprintf(tw, "Skipped:\t%s\n", yellow(summary.SkippedCount))
	fmt.Fprintf(tw, "Failed:\t%s\n", red(summary.FailedCount))

	overall := green("SUCCESS")
	if summary.Failed() {
		overall = red("FAILURE")
	}
	fmt.Fprintf(tw, "Overall:\t%s\n", overall)

	return nil
}

func decisionDetails(outcome domain.ResourceOutcome) string {
	if outcome.Reason != "" {
		return outcome.Reason
	}
	if outcome.Decision == domain.DecisionAct {
		return "Transition requested."
	}
	return fmt.Sprintf("Skipped in state %q.", outcome.Resource.CurrentState)
}

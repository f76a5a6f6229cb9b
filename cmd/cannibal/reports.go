package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/cannibal"
)

// Run executes the reports list command.
func (c *ReportsListCmd) Run(deps *Dependencies) error {
	filter := cannibal.ReportFilter{Limit: c.Limit}
	if c.Seed != "" {
		seed := c.Seed
		if u, err := cannibal.ParseSeed(c.Seed); err == nil {
			seed = u.String()
		}
		filter.Seed = &seed
	}

	reports, err := deps.Reports.FindReports(deps.Ctx, filter)
	if err != nil {
		return err
	}

	if len(reports) == 0 {
		fmt.Fprintln(deps.Stdout, "No saved reports. Use --save with analyze or compare to keep one.")
		return nil
	}

	for _, r := range reports {
		fmt.Fprintf(deps.Stdout, "%s  %s  %-5s  %s\n",
			r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Status, strings.Join(r.Seeds, " "))
	}
	return nil
}

// Run executes the reports show command.
func (c *ReportsShowCmd) Run(deps *Dependencies) error {
	writer, err := reportWriter(c.Format)
	if err != nil {
		return err
	}

	report, err := deps.Reports.FindReportByID(deps.Ctx, c.ID)
	if err != nil {
		return err
	}
	return writeReport(deps, writer, report, c.Output)
}

// Run executes the reports delete command.
func (c *ReportsDeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		return cannibal.Errorf(cannibal.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Reports.DeleteReport(deps.Ctx, c.ID); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted report %s\n", c.ID)
	return nil
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"

	response "quote_rollup/internal/adapter/http/dto/response"
	"quote_rollup/internal/domain/entities"
	"quote_rollup/internal/usecase"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeRollup(w io.Writer, format string, r usecase.RecomputeResult) error {
	if format == "json" {
		return writeJSON(w, response.FromRollup(r))
	}

	fmt.Fprintf(w, "quote:       %s\n", r.QuoteID)
	fmt.Fprintf(w, "outcome:     %s\n", r.Outcome)
	if r.Reason != "" {
		fmt.Fprintf(w, "reason:      %s", r.Reason)
		if r.Detail != "" {
			fmt.Fprintf(w, " (%s)", r.Detail)
		}
		fmt.Fprintln(w)
	}
	if r.OpportunityID != "" {
		fmt.Fprintf(w, "opportunity: %s\n", r.OpportunityID)
	}
	if r.Total != nil {
		fmt.Fprintf(w, "total:       %s (%d won quotes)\n", r.Total, r.Contributors)
	}
	return nil
}

func writeOpportunity(w io.Writer, format string, o entities.Opportunity) error {
	if format == "json" {
		return writeJSON(w, response.FromOpportunity(o))
	}
	fmt.Fprintf(w, "opportunity: %s\n", o.ID)
	fmt.Fprintf(w, "name:        %s\n", o.Name)
	fmt.Fprintf(w, "total won:   %s\n", o.TotalWonAmount)
	return nil
}

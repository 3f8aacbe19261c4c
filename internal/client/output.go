package client

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/MKhiriev/go-waste-sync/models"
)

// printer renders command results as aligned text or, with --json, as one
// JSON document per command.
type printer struct {
	out  io.Writer
	json bool
}

func (p *printer) encode(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *printer) table() *tabwriter.Writer {
	return tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
}

func (p *printer) message(msg string) error {
	if p.json {
		return p.encode(map[string]string{"message": msg})
	}
	_, err := fmt.Fprintln(p.out, msg)
	return err
}

// session never prints the token in text mode.
func (p *printer) session(msg string, s models.Session) error {
	if p.json {
		return p.encode(struct {
			Message string      `json:"message"`
			User    models.User `json:"user"`
		}{Message: msg, User: s.User})
	}
	_, err := fmt.Fprintf(p.out, "%s as %s (%s)\n", msg, s.User.Username, s.User.Role)
	return err
}

func (p *printer) reports(reports []models.FlushReport) error {
	if p.json {
		if reports == nil {
			reports = []models.FlushReport{}
		}
		return p.encode(reports)
	}

	w := p.table()
	fmt.Fprintln(w, "AREA\tATTEMPTED\tSUBMITTED\tDUPLICATES\tFAILED\tDEAD\tSKIPPED")
	for _, r := range reports {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%d\n",
			r.Area, r.Attempted, r.Submitted, r.Duplicates, r.Failed, r.DeadLettered, r.Skipped)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	for _, r := range reports {
		if r.Unauthorized {
			_, err := fmt.Fprintf(p.out, "%s: session expired, sign in again to continue\n", r.Area)
			return err
		}
	}
	return nil
}

func (p *printer) submitted(area models.QueueArea, entry models.PendingMutation, report *models.FlushReport) error {
	if p.json {
		return p.encode(struct {
			Area   models.QueueArea       `json:"area"`
			Entry  models.PendingMutation `json:"entry"`
			Report *models.FlushReport    `json:"report,omitempty"`
		}{Area: area, Entry: entry, Report: report})
	}

	if report == nil {
		_, err := fmt.Fprintf(p.out, "Queued %s %s (%s). It will be sent when the server is reachable\n",
			area, entry.LocalID, entry.ClientReference())
		return err
	}
	if _, err := fmt.Fprintf(p.out, "Queued %s %s (%s)\n", area, entry.LocalID, entry.ClientReference()); err != nil {
		return err
	}
	return p.reports([]models.FlushReport{*report})
}

func (p *printer) list(areas []models.QueueArea, entries map[models.QueueArea][]models.PendingMutation) error {
	if p.json {
		return p.encode(entries)
	}

	w := p.table()
	fmt.Fprintln(w, "AREA\tLOCAL ID\tREFERENCE\tENQUEUED\tATTEMPTS\tNEXT ATTEMPT\tLAST ERROR")
	for _, area := range areas {
		for _, e := range entries[area] {
			next := "-"
			if e.NextAttemptAt != nil {
				next = e.NextAttemptAt.Local().Format(time.DateTime)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
				area, e.LocalID, e.ClientReference(), e.EnqueuedAt.Local().Format(time.DateTime),
				e.Attempts, next, e.LastError)
		}
	}
	return w.Flush()
}

func (p *printer) status(s models.ClientStatus) error {
	if p.json {
		return p.encode(s)
	}

	w := p.table()
	fmt.Fprintf(w, "Connectivity:\t%s\n", s.Connectivity)
	if s.User != nil {
		fmt.Fprintf(w, "Signed in:\t%s (%s)\n", s.User.Username, s.User.Role)
	} else {
		fmt.Fprintln(w, "Signed in:\tno")
	}
	lastSync := "never"
	if s.LastSync != nil {
		lastSync = s.LastSync.Local().Format(time.DateTime)
	}
	fmt.Fprintf(w, "Last sync:\t%s\n", lastSync)
	if s.LastError != "" {
		fmt.Fprintf(w, "Last error:\t%s\n", s.LastError)
	}
	for _, t := range models.EntityTypes {
		fmt.Fprintf(w, "Cached %s:\t%d\n", t, s.Cached[t])
	}
	for _, area := range models.QueueAreas {
		fmt.Fprintf(w, "Queue %s:\t%d pending, %d dead\n", area, s.Pending[area], s.DeadLetters[area])
	}
	return w.Flush()
}

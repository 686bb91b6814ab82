package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/muesli/termenv"

	"github.com/greaheisl/relaybox/internal/sim"
)

var kindColors = map[sim.Kind]string{
	sim.KindButton:   "#818cf8",
	sim.KindRelays:   "#f472b6",
	sim.KindSelect:   "#34d399",
	sim.KindHold:     "#fbbf24",
	sim.KindTimer:    "#60a5fa",
	sim.KindShutdown: "#fb7185",
}

// printer writes traces and records as colored text. Lines may be written
// from several goroutines.
type printer struct {
	mu      sync.Mutex
	w       io.Writer
	profile termenv.Profile
	eol     string
}

func newPrinter(w io.Writer, profile termenv.Profile) *printer {
	return &printer{w: w, profile: profile, eol: "\n"}
}

func (p *printer) line(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, format+p.eol, args...)
}

func (p *printer) record(r sim.Record) {
	kind := p.profile.String(fmt.Sprintf("%-8s", r.Kind)).Foreground(p.profile.Color(kindColors[r.Kind]))
	p.line("%10v  %s %s", r.At, kind, r.Detail)
}

func (p *printer) trace(t *sim.Trace) {
	p.line("%s", p.profile.String(t.Scenario).Bold())
	p.line("run %s  fingerprint %s", t.RunID, t.Fingerprint)
	for _, r := range t.Records {
		p.record(r)
	}
	status := p.profile.String("running").Foreground(p.profile.Color("#fbbf24"))
	if t.Finished {
		status = p.profile.String("finished").Foreground(p.profile.Color("#34d399"))
	}
	p.line("%v  %s after %d steps  relays %v  clock %v", t.End, status, t.Steps, t.Relays, t.Clock)
}

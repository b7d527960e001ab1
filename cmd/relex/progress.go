package main

import (
	"github.com/gosuri/uiprogress"
)

// progressBar starts a bar of total steps. Incr and stop are no-ops when
// disabled.
type progressBar struct {
	bar *uiprogress.Bar
}

func startProgress(enabled bool, total int) *progressBar {
	if !enabled {
		return &progressBar{}
	}

	uiprogress.Start()
	bar := uiprogress.AddBar(total)
	bar.AppendCompleted()
	bar.PrependElapsed()
	return &progressBar{bar: bar}
}

// Describe appends the output of name to the bar.
func (p *progressBar) Describe(name func() string) {
	if p.bar == nil {
		return
	}
	p.bar.AppendFunc(func(b *uiprogress.Bar) string {
		return name()
	})
}

func (p *progressBar) Incr() {
	if p.bar != nil {
		p.bar.Incr()
	}
}

func (p *progressBar) Stop() {
	if p.bar != nil {
		uiprogress.Stop()
		p.bar = nil
	}
}

func (p *progressBar) SetTotal(total int) {
	if p.bar != nil && p.bar.Total != total {
		p.bar.Total = total
		_ = p.bar.Set(0)
	}
}

package printer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/inhies/go-bytesize"
	tele "gopkg.in/telebot.v3"
)

// NewBot wires a telegram operator bot for the kiosk: connection status,
// recent jobs, pausing and test prints, without touching the booth UI.
func NewBot(token string, p *Printer) (*Bot, error) {
	pref := tele.Settings{
		Token: token,
		Poller: &tele.LongPoller{
			Timeout: 30 * time.Second,
		},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, err
	}

	return &Bot{
		b: b,
		p: p,
	}, nil
}

type Bot struct {
	b *tele.Bot
	p *Printer
}

func (b *Bot) handleStatus() {
	b.b.Handle("/status", func(context tele.Context) error {
		state := "disconnected"
		if b.p.Connected() {
			state = "connected"
		}
		if b.p.Paused() {
			state += ", paused"
		}

		curr := b.p.History().Curr()
		if curr == nil {
			return context.Reply(fmt.Sprintf("printer %s, no jobs yet", state))
		}

		return context.Reply(fmt.Sprintf("printer %s, last job %s", state, jobLine(curr)))
	})

	b.b.Handle("/history", func(context tele.Context) error {
		jobs := b.p.History().Jobs()
		if len(jobs) == 0 {
			return context.Reply("no jobs yet")
		}

		lines := make([]string, 0, len(jobs))
		for _, j := range jobs {
			lines = append(lines, jobLine(j))
		}
		return context.Reply(strings.Join(lines, "\n"))
	})
}

func (b *Bot) handlePause() {
	b.b.Handle("/pause", func(context tele.Context) error {
		b.p.Pause()
		return context.Reply("paused, new jobs are rejected")
	})

	b.b.Handle("/resume", func(context tele.Context) error {
		b.p.Resume()
		return context.Reply("resumed")
	})
}

func (b *Bot) handleTest() {
	b.b.Handle("/test", func(context tele.Context) error {
		height := 240
		if in := context.Message().Payload; in != "" {
			parsed, err := strconv.Atoi(in)
			if err != nil || parsed < 8 || parsed > 2048 {
				return context.Reply("height must be 8..2048")
			}
			height = parsed
		}

		job, err := b.p.Print(TestPattern(b.p.Config().Width, height), 1)
		if err != nil {
			return context.Reply(fmt.Sprintf("test print failed: %s", err))
		}

		return context.Reply(fmt.Sprintf("printed %s", jobLine(job)))
	})
}

func (b *Bot) Start() {
	b.handleStatus()
	b.handlePause()
	b.handleTest()
	go b.b.Start()
}

func (b *Bot) Stop() {
	b.b.Stop()
}

func jobLine(j *Job) string {
	size := bytesize.New(float64(j.FrameLen)).String()
	if j.Err != nil {
		return fmt.Sprintf("%s %dx%d x%d %s FAILED: %s", j.ID, j.Width, j.Height, j.Copies, size, j.Err)
	}
	return fmt.Sprintf("%s %dx%d x%d %s ok in %s", j.ID, j.Width, j.Height, j.Copies, size, j.Finished.Sub(j.Started).Round(time.Millisecond))
}

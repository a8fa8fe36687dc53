package server

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/google/uuid"

	"rgbdslam/internal/application"
	"rgbdslam/internal/logging"
	"rgbdslam/internal/ui"
)

const closeTimeout = 10 * time.Second

// pumpMsg carries one presenter message into the program
type pumpMsg struct {
	msg tea.Msg
}

// pump is the ui.Sender of one connection. The program of an SSH session is
// created by the middleware, so messages travel through a channel read by a
// command instead of Program.Send.
type pump struct {
	ch   chan tea.Msg
	done <-chan struct{}
}

func newPump(done <-chan struct{}) *pump {
	return &pump{ch: make(chan tea.Msg), done: done}
}

func (p *pump) Send(msg tea.Msg) {
	select {
	case p.ch <- msg:
	case <-p.done:
	}
}

func (p *pump) next() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-p.ch:
			return pumpMsg{msg: msg}
		case <-p.done:
			return nil
		}
	}
}

// sessionModel wraps the capture screen of one connection
type sessionModel struct {
	*ui.Model
	pump *pump
}

func (s *sessionModel) Init() tea.Cmd {
	return tea.Batch(s.Model.Init(), s.pump.next())
}

func (s *sessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if pumped, ok := msg.(pumpMsg); ok {
		_, cmd := s.Model.Update(pumped.msg)
		return s, tea.Batch(cmd, s.pump.next())
	}
	_, cmd := s.Model.Update(msg)
	return s, cmd
}

// sessionDir is the private data directory of one connection
func (s *Server) sessionDir(user, id string) string {
	return filepath.Join(s.opts.DataDir, userDirName(user), id)
}

// userDirName keeps letters, digits, dashes and underscores of an SSH user name
func userDirName(user string) string {
	name := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			return r
		}
		return -1
	}, user)
	if name == "" {
		return "anonymous"
	}
	return name
}

// teaHandler creates the capture session and screen of a connection
func (s *Server) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	id := uuid.NewString()
	dir := s.sessionDir(sess.User(), id)

	logging.Logger.Info("New SSH session",
		"session_id", id,
		"user", sess.User(),
		"remote_addr", sess.RemoteAddr().String(),
		"term", pty.Term,
		"window", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height),
		"data_dir", dir)

	capture, err := application.NewCapture(application.Options{
		CatalogPath: filepath.Join(dir, "catalog.db"),
		DataDir:     filepath.Join(dir, "scans"),
		Depth:       true,
		Permission:  s.opts.Permission,
		Settings:    s.opts.Settings,
	})
	if err != nil {
		logging.Logger.Error("Failed to create capture session for SSH session",
			"error", err,
			"session_id", id)
		return errorModel{err}, nil
	}

	p := newPump(sess.Context().Done())
	capture.Start(p)
	startTime := time.Now()

	go func() {
		<-sess.Context().Done()
		ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		if err := capture.Close(ctx); err != nil {
			logging.Logger.Error("Failed to close capture session for SSH session",
				"error", err,
				"session_id", id)
		}
		logging.Logger.Info("SSH session ended",
			"session_id", id,
			"duration", time.Since(startTime).String())
	}()

	return &sessionModel{Model: capture.Model, pump: p}, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// errorModel is a simple model that displays an error
type errorModel struct {
	err error
}

func (e errorModel) Init() tea.Cmd {
	return nil
}

func (e errorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return e, tea.Quit
}

func (e errorModel) View() string {
	return fmt.Sprintf("Error: %v\n", e.err)
}

package server

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gliderlabs/ssh"
	"github.com/google/uuid"

	"github.com/lixenwraith/termtris/animation"
	"github.com/lixenwraith/termtris/audio"
	"github.com/lixenwraith/termtris/core"
	"github.com/lixenwraith/termtris/engine"
	"github.com/lixenwraith/termtris/input"
	"github.com/lixenwraith/termtris/render"
	"github.com/lixenwraith/termtris/tetris"
)

// handle runs one game for the lifetime of an SSH session
func (s *Server) handle(sess ssh.Session) {
	_, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "termtris needs a terminal, connect with: ssh -t ...")
		sess.Exit(1)
		return
	}
	if !s.acquire() {
		fmt.Fprintln(sess, "Server is full, try again later.")
		sess.Exit(1)
		return
	}
	defer s.release()

	id := uuid.NewString()
	log.Printf("ssh: session %s open: user=%s remote=%s", id, sess.User(), sess.RemoteAddr())
	defer log.Printf("ssh: session %s closed", id)

	ctx, cancel := context.WithCancel(sess.Context())
	defer cancel()

	loop := engine.NewLoop(nil, 0)
	screen := render.NewANSI(sess, s.opts.Width, s.opts.Height, s.opts.PreviewSize)
	prompt := tetris.NewPrompt(screen.RenderMessage)

	ctrl := tetris.New(s.opts, tetris.Deps{
		Scheduler: loop,
		Renderer:  screen,
		Cues:      audio.NewBell(sess),
		History:   s.store,
		Confirmer: prompt,
		Idle:      animation.NewScreenSaver(loop, s.opts.Width, s.opts.Height),
		GameOver:  animation.NewGameOver(loop),
		Metrics:   s.metrics,
	})
	keys := tetris.NewKeys(ctrl, loop, s.keys, s.releaseDelay, prompt, cancel)

	if err := screen.Open(); err != nil {
		log.Printf("ssh: session %s: %v", id, err)
		return
	}

	loop.Post(ctrl.Start)
	core.Go(func() { readKeys(sess, loop, keys.Key, cancel) })
	core.Go(func() {
		for range winCh {
			loop.Post(func() { screen.Redraw() })
		}
	})

	if err := loop.Run(ctx); err != nil && ctx.Err() == nil {
		log.Printf("ssh: session %s: %v", id, err)
	}
	// Loop goroutine has exited; nothing else touches the controller now
	ctrl.Stop()
	screen.Close()
	sess.Exit(0)
}

// readKeys decodes raw input and posts each key onto the loop until the reader fails
// A trailing ESC is held for input.EscapeDelay so a split arrow sequence stays one key
func readKeys(r io.Reader, loop *engine.Loop, handle func(input.Key), cancel func()) {
	defer cancel()

	chunks := make(chan []byte)
	core.Go(func() {
		defer close(chunks)
		buf := make([]byte, 256)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				select {
				case chunks <- append([]byte(nil), buf[:n]...):
				case <-loop.Done():
					return
				}
			}
			if err != nil {
				return
			}
		}
	})

	post := func(k input.Key) bool {
		return loop.Post(func() { handle(k) })
	}

	var pending []byte
	var escape <-chan time.Time
	for {
		select {
		case chunk, ok := <-chunks:
			if !ok {
				return
			}
			keys, rest := input.Decode(append(pending, chunk...))
			pending = append(pending[:0:0], rest...)
			escape = nil
			if input.PendingEscape(pending) {
				escape = time.After(input.EscapeDelay)
			}
			for _, k := range keys {
				if !post(k) {
					return
				}
			}
		case <-escape:
			pending, escape = nil, nil
			if !post(input.Key{Code: tcell.KeyEsc}) {
				return
			}
		case <-loop.Done():
			return
		}
	}
}

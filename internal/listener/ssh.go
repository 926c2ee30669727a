package listener

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"

	"github.com/pixil98/go-olc/internal"
	"golang.org/x/crypto/ssh"
)

type SSHListenerOpt func(*SSHListener)

// WithAllowedEditors limits ssh logins to the named users. Matching ignores
// case. Without it anyone may connect and is asked for a name.
func WithAllowedEditors(names ...string) SSHListenerOpt {
	return func(l *SSHListener) {
		for _, n := range names {
			l.allowed[strings.ToLower(n)] = true
		}
	}
}

// SSHListener accepts editor connections over ssh. The ssh user names the
// editor, so a valid user skips the name prompt.
type SSHListener struct {
	port    uint16
	cm      *ConnectionManager
	hostKey ssh.Signer
	allowed map[string]bool
}

func NewSSHListener(port uint16, cm *ConnectionManager, hostKey ssh.Signer, opts ...SSHListenerOpt) *SSHListener {
	l := &SSHListener{
		port:    port,
		cm:      cm,
		hostKey: hostKey,
		allowed: map[string]bool{},
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

func (l *SSHListener) serverConfig() *ssh.ServerConfig {
	config := &ssh.ServerConfig{
		NoClientAuth: true,
		NoClientAuthCallback: func(meta ssh.ConnMetadata) (*ssh.Permissions, error) {
			if !l.permits(meta.User()) {
				return nil, fmt.Errorf("editor %q is not allowed", meta.User())
			}
			return nil, nil
		},
	}
	config.AddHostKey(l.hostKey)
	return config
}

func (l *SSHListener) permits(user string) bool {
	return len(l.allowed) == 0 || l.allowed[strings.ToLower(user)]
}

func (l *SSHListener) Start(ctx context.Context) error {
	config := l.serverConfig()

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", l.port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", l.port, err)
	}

	slog.InfoContext(ctx, "listening for ssh", "port", l.port, "restricted", len(l.allowed) > 0)

	connCtx, cancelConns := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				cancelConns()
				wg.Wait()
				return nil
			default:
			}
			slog.ErrorContext(ctx, "accepting ssh connection", "error", err)
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			l.handleConnection(connCtx, conn, config)
		}()
	}
}

func (l *SSHListener) handleConnection(ctx context.Context, conn net.Conn, config *ssh.ServerConfig) {
	defer conn.Close()

	sshConn, chans, reqs, err := ssh.NewServerConn(conn, config)
	if err != nil {
		slog.WarnContext(ctx, "ssh handshake", "remote", conn.RemoteAddr(), "error", err)
		return
	}
	defer sshConn.Close()

	slog.InfoContext(ctx, "ssh editor connected", "remote", conn.RemoteAddr(), "user", sshConn.User())
	ctx = internal.WithEditorName(ctx, sshConn.User())

	// Unblocks the channel loop below on shutdown.
	go func() {
		<-ctx.Done()
		sshConn.Close()
	}()

	go ssh.DiscardRequests(reqs)

	for newChan := range chans {
		if newChan.ChannelType() != "session" {
			newChan.Reject(ssh.UnknownChannelType, "unknown channel type")
			continue
		}

		ch, requests, err := newChan.Accept()
		if err != nil {
			slog.ErrorContext(ctx, "accepting ssh channel", "error", err)
			continue
		}
		l.serveChannel(ctx, ch, requests)
	}
}

// serveChannel waits for a shell request, then runs one editor session on ch.
func (l *SSHListener) serveChannel(ctx context.Context, ch ssh.Channel, requests <-chan *ssh.Request) {
	defer ch.Close()

	shellReady := make(chan struct{})
	var once sync.Once
	go func() {
		for req := range requests {
			switch req.Type {
			case "pty-req":
				// Without a pty the client keeps local echo and line editing.
				req.Reply(false, nil)
			case "shell":
				req.Reply(true, nil)
				once.Do(func() { close(shellReady) })
			default:
				req.Reply(false, nil)
			}
		}
	}()

	select {
	case <-shellReady:
	case <-ctx.Done():
		return
	}

	l.cm.AcceptConnection(ctx, newCRLFReadWriter(ch))
}

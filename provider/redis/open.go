package redis

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"

	goredis "github.com/redis/go-redis/v9"
)

const (
	defaultHost = "localhost"
	defaultPort = 6379
)

// ErrBorrowedClientConfig is returned when credentials or a database index are
// combined with a caller-supplied client. A pooled client can only be
// authenticated by whoever builds it.
var ErrBorrowedClientConfig = errors.New("redis provider: password/database cannot be applied to a borrowed client")

// Config describes how to obtain a client. Exactly one construction mode
// applies, chosen in this order: Client, URL, Host/Port, library defaults.
type Config struct {
	// Client is used as-is. The provider borrows it and leaves Close to the
	// caller unless CloseClient is set.
	Client      goredis.UniversalClient
	CloseClient bool

	// URL is a connection string, e.g. redis://:secret@127.0.0.1:6379/5.
	URL string

	Host string
	Port int

	// Username and Password are sent with AUTH on every new connection.
	// They override credentials found in URL.
	Username string
	Password string

	// Database is selected on every new connection when non-zero.
	// Overrides the path segment of URL.
	Database int

	// Base carries any other client tuning (timeouts, pool sizes, TLS).
	// Addr, Username, Password, DB and OnConnect are managed by Open.
	Base *goredis.Options
}

type mode int

const (
	modeClient mode = iota
	modeURL
	modeAddr
	modeDefault
)

func (m mode) String() string {
	switch m {
	case modeClient:
		return "client"
	case modeURL:
		return "url"
	case modeAddr:
		return "addr"
	default:
		return "default"
	}
}

func (c Config) mode() mode {
	switch {
	case c.Client != nil:
		return modeClient
	case c.URL != "":
		return modeURL
	case c.Host != "" || c.Port != 0:
		return modeAddr
	default:
		return modeDefault
	}
}

// ConnectionError reports a failure to authenticate, select the database or
// reach the server while opening a provider. It is never transient from the
// store's point of view: construction must fail.
type ConnectionError struct {
	Op   string // "auth", "select", "ping" or "parse"
	Mode string // how the address was configured: "url", "addr" or "default"
	Addr string
	Err  error
}

func (e *ConnectionError) Error() string {
	if e.Addr == "" {
		return fmt.Sprintf("redis provider: %s (%s): %v", e.Op, e.Mode, e.Err)
	}
	return fmt.Sprintf("redis provider: %s %s (%s): %v", e.Op, e.Addr, e.Mode, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// Open resolves cfg into a provider. Clients opened here are owned by the
// provider and closed by Close. When credentials or a database are
// configured, Open pings once so that a bad password or database index fails
// here instead of on the first cache call.
func Open(ctx context.Context, cfg Config) (*Redis, error) {
	if cfg.mode() == modeClient {
		if cfg.Password != "" || cfg.Username != "" || cfg.Database != 0 {
			return nil, ErrBorrowedClientConfig
		}
		return New(cfg.Client, cfg.CloseClient)
	}

	opt, err := cfg.options()
	if err != nil {
		return nil, err
	}
	client := goredis.NewClient(opt)

	if opt.OnConnect != nil {
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			var ce *ConnectionError
			if errors.As(err, &ce) {
				return nil, ce
			}
			return nil, &ConnectionError{Op: "ping", Mode: cfg.mode().String(), Addr: opt.Addr, Err: err}
		}
	}
	return New(client, true)
}

// options builds client options for every mode except modeClient.
func (c Config) options() (*goredis.Options, error) {
	opt := &goredis.Options{}
	if c.Base != nil {
		cp := *c.Base
		opt = &cp
	}

	username, password, db := c.Username, c.Password, c.Database
	m := c.mode().String()

	switch c.mode() {
	case modeURL:
		parsed, err := goredis.ParseURL(c.URL)
		if err != nil {
			return nil, &ConnectionError{Op: "parse", Mode: m, Err: err}
		}
		opt.Addr = parsed.Addr
		opt.Network = parsed.Network
		if parsed.TLSConfig != nil {
			opt.TLSConfig = parsed.TLSConfig
		}
		if username == "" {
			username = parsed.Username
		}
		if password == "" {
			password = parsed.Password
		}
		if db == 0 {
			db = parsed.DB
		}
	case modeAddr:
		host, port := c.Host, c.Port
		if host == "" {
			host = defaultHost
		}
		if port == 0 {
			port = defaultPort
		}
		opt.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	}

	// AUTH and SELECT run in OnConnect, per connection, so their failures
	// surface as ConnectionError with the failing step named.
	opt.Username, opt.Password, opt.DB = "", "", 0
	opt.OnConnect = nil
	if password != "" || db != 0 {
		addr := opt.Addr
		opt.OnConnect = func(ctx context.Context, cn *goredis.Conn) error {
			if password != "" {
				var err error
				if username != "" {
					err = cn.AuthACL(ctx, username, password).Err()
				} else {
					err = cn.Auth(ctx, password).Err()
				}
				if err != nil {
					return fmt.Errorf("on connect: %w", &ConnectionError{Op: "auth", Mode: m, Addr: addr, Err: err})
				}
			}
			if db != 0 {
				if err := cn.Select(ctx, db).Err(); err != nil {
					return fmt.Errorf("on connect: %w", &ConnectionError{Op: "select", Mode: m, Addr: addr, Err: err})
				}
			}
			return nil
		}
	}
	return opt, nil
}

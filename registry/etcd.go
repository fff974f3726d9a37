package registry

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"
)

// EtcdOptions configures an etcd-backed template source.
type EtcdOptions struct {
	// Endpoints are the etcd cluster endpoints.
	Endpoints []string

	// Namespace is the key prefix; templates live under
	// "/<namespace>/templates/<platform>/<command>". Defaults to "netcli".
	Namespace string

	// TLS configuration for secure connections.
	TLS *tls.Config

	// DialTimeout is the maximum time to wait for connection establishment.
	DialTimeout time.Duration

	// RequestTimeout bounds individual template fetches.
	RequestTimeout time.Duration
}

// EtcdSource serves template text from an etcd cluster, for deployments that
// already keep shared configuration there.
type EtcdSource struct {
	client    *clientv3.Client
	namespace string
	timeout   time.Duration
}

// NewEtcdSource creates an etcd source and verifies connectivity.
func NewEtcdSource(opts EtcdOptions) (*EtcdSource, error) {
	if len(opts.Endpoints) == 0 {
		return nil, fmt.Errorf("etcd endpoints cannot be empty")
	}
	if opts.Namespace == "" {
		opts.Namespace = "netcli"
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = 5 * time.Second
	}
	if opts.RequestTimeout == 0 {
		opts.RequestTimeout = 3 * time.Second
	}

	cli, err := clientv3.New(clientv3.Config{
		Endpoints:   opts.Endpoints,
		DialTimeout: opts.DialTimeout,
		TLS:         opts.TLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create etcd client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.RequestTimeout)
	defer cancel()
	if _, err := cli.Get(ctx, "health-check"); healthCheckFatal(err) {
		cli.Close()
		return nil, fmt.Errorf("etcd health check failed: %w", err)
	}

	return &EtcdSource{client: cli, namespace: opts.Namespace, timeout: opts.RequestTimeout}, nil
}

// healthCheckFatal reports whether a health-check Get error should fail
// construction. A deadline on the probe means the cluster is slow, not
// absent; the client layers can wrap the deadline error, so match with
// errors.Is rather than identity.
func healthCheckFatal(err error) bool {
	return err != nil && !errors.Is(err, context.DeadlineExceeded)
}

// Template implements Source.
func (s *EtcdSource) Template(ctx context.Context, platform, command string) (string, error) {
	key := fmt.Sprintf("/%s/templates/%s/%s", s.namespace, platform, command)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	resp, err := s.client.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("fetching template %s: %w", key, err)
	}
	if len(resp.Kvs) == 0 {
		return "", fmt.Errorf("%w: %s/%s", ErrTemplateNotFound, platform, command)
	}
	return string(resp.Kvs[0].Value), nil
}

// Close closes the etcd connection.
func (s *EtcdSource) Close() error {
	return s.client.Close()
}

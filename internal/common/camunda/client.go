// internal/common/camunda/client.go

// Package camunda wraps the Zeebe client used by the worker manager.
package camunda

import (
	"context"
	stderrors "errors"
	"fmt"
	"sort"
	"time"

	"upkept-workers/internal/common/errors"

	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Client wraps the Zeebe gRPC client and answers readiness from the
// cluster topology.
type Client struct {
	client   zbc.Client
	config   *ClientConfig
	topology func(ctx context.Context) (*pb.TopologyResponse, error)
}

// ClientConfig holds configuration for the Camunda/Zeebe client.
type ClientConfig struct {
	GatewayAddress         string
	UsePlaintextConnection bool
	ConnectionTimeout      time.Duration
	// RequestTimeout bounds a single topology attempt.
	RequestTimeout time.Duration
	RetryConfig    *RetryConfig
}

// RetryConfig defines retry behavior for transient gateway failures.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

var DefaultRetryConfig = &RetryConfig{
	MaxRetries: 2,
	BaseDelay:  250 * time.Millisecond,
	MaxDelay:   time.Second,
}

// Topology is what the gateway reports about the cluster, reduced to what
// job activation depends on.
type Topology struct {
	Brokers        int
	Partitions     int
	GatewayVersion string
	// Leaderless lists partitions with no healthy leader. Jobs on those
	// partitions cannot be activated.
	Leaderless []int32
}

// Ready fails when no broker is known or any partition lacks a healthy leader.
func (t Topology) Ready() error {
	switch {
	case t.Brokers == 0:
		return fmt.Errorf("gateway reports no brokers")
	case len(t.Leaderless) > 0:
		return fmt.Errorf("no healthy leader for partition(s) %v", t.Leaderless)
	}
	return nil
}

// NewClientWithConfig connects and verifies the gateway answers a topology
// request within ConnectionTimeout.
func NewClientWithConfig(config *ClientConfig) (*Client, error) {
	if config.RetryConfig == nil {
		config.RetryConfig = DefaultRetryConfig
	}
	if config.ConnectionTimeout <= 0 {
		config.ConnectionTimeout = 10 * time.Second
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = 5 * time.Second
	}

	zeebeClient, err := zbc.NewClient(&zbc.ClientConfig{
		GatewayAddress:         config.GatewayAddress,
		UsePlaintextConnection: config.UsePlaintextConnection,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Zeebe client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.ConnectionTimeout)
	defer cancel()

	if _, err := zeebeClient.NewTopologyCommand().Send(ctx); err != nil {
		zeebeClient.Close()
		return nil, fmt.Errorf("failed to connect to Zeebe gateway at %s: %w", config.GatewayAddress, err)
	}

	return &Client{
		client: zeebeClient,
		config: config,
		topology: func(ctx context.Context) (*pb.TopologyResponse, error) {
			return zeebeClient.NewTopologyCommand().Send(ctx)
		},
	}, nil
}

// GetClient returns the raw Zeebe client for opening job workers.
func (c *Client) GetClient() zbc.Client {
	return c.client
}

func (c *Client) Close() error {
	return c.client.Close()
}

// Topology fetches and summarises the cluster topology, retrying
// unavailable and timed-out attempts.
func (c *Client) Topology(ctx context.Context) (Topology, error) {
	var resp *pb.TopologyResponse
	err := c.withRetry(ctx, "topology", func(ctx context.Context) error {
		var err error
		resp, err = c.topology(ctx)
		return err
	})
	if err != nil {
		return Topology{}, err
	}
	return summarize(resp), nil
}

// HealthCheck reports whether jobs can currently be activated.
func (c *Client) HealthCheck(ctx context.Context) error {
	t, err := c.Topology(ctx)
	if err != nil {
		return fmt.Errorf("zeebe health check failed: %w", err)
	}
	return t.Ready()
}

func (c *Client) withRetry(ctx context.Context, operation string, fn func(context.Context) error) error {
	rc := c.config.RetryConfig
	delay := rc.BaseDelay

	for attempt := 1; ; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, c.config.RequestTimeout)
		err := fn(attemptCtx)
		cancel()
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return fmt.Errorf("zeebe %s cancelled after %d attempt(s): %w", operation, attempt, ctx.Err())
		}
		if !retryable(err) || attempt > rc.MaxRetries {
			return classify(err, operation, attempt)
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("zeebe %s cancelled after %d attempt(s): %w", operation, attempt, ctx.Err())
		}
		delay *= 2
		if delay > rc.MaxDelay {
			delay = rc.MaxDelay
		}
	}
}

// grpcCode treats a bare context deadline like the gRPC status it stands for.
func grpcCode(err error) codes.Code {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return codes.DeadlineExceeded
	}
	return status.Code(err)
}

func retryable(err error) bool {
	switch grpcCode(err) {
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted:
		return true
	}
	return false
}

func classify(err error, operation string, attempts int) error {
	cause := fmt.Errorf("zeebe %s failed after %d attempt(s): %w", operation, attempts, err)
	switch grpcCode(err) {
	case codes.DeadlineExceeded:
		return errors.NewTimeoutError("zeebe", cause)
	case codes.Unauthenticated, codes.PermissionDenied:
		return errors.NewAuthenticationError(cause.Error())
	default:
		return errors.NewExternalServiceError("zeebe", cause)
	}
}

// summarize counts partitions from both PartitionsCount and the broker
// reports, so a partition no broker claims still shows up as leaderless.
func summarize(resp *pb.TopologyResponse) Topology {
	seen := make(map[int32]bool)
	led := make(map[int32]bool)
	for id := int32(1); id <= resp.GetPartitionsCount(); id++ {
		seen[id] = true
	}
	for _, b := range resp.GetBrokers() {
		for _, p := range b.GetPartitions() {
			seen[p.GetPartitionId()] = true
			if p.GetRole() == pb.Partition_LEADER && p.GetHealth() == pb.Partition_HEALTHY {
				led[p.GetPartitionId()] = true
			}
		}
	}

	t := Topology{
		Brokers:        len(resp.GetBrokers()),
		Partitions:     len(seen),
		GatewayVersion: resp.GetGatewayVersion(),
	}
	for id := range seen {
		if !led[id] {
			t.Leaderless = append(t.Leaderless, id)
		}
	}
	sort.Slice(t.Leaderless, func(i, j int) bool { return t.Leaderless[i] < t.Leaderless[j] })
	return t
}

package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// DefaultSubject is the NATS subject carrying vendor price ticks.
const DefaultSubject = "marketdata.prices"

// PriceSink receives validated price updates from the feed. The simulated
// market-data provider satisfies this.
type PriceSink interface {
	SetPrice(symbol string, price decimal.Decimal)
}

// Consumer subscribes to vendor price ticks via NATS and applies them to the
// price sink. Ticks are ephemeral, so a plain subscription is used rather
// than a durable stream; a missed tick is superseded by the next one.
type Consumer struct {
	nc      *nats.Conn
	sink    PriceSink
	subject string
	logger  zerolog.Logger
}

// NewConsumer creates a new NATS price-tick consumer. An empty subject falls
// back to DefaultSubject.
func NewConsumer(nc *nats.Conn, sink PriceSink, subject string) *Consumer {
	if subject == "" {
		subject = DefaultSubject
	}
	return &Consumer{
		nc:      nc,
		sink:    sink,
		subject: subject,
		logger:  log.With().Str("component", "ingest").Logger(),
	}
}

// Start begins consuming price ticks. Blocks until the context is cancelled.
func (c *Consumer) Start(ctx context.Context) error {
	sub, err := c.nc.Subscribe(c.subject, c.handleMessage)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", c.subject, err)
	}

	c.logger.Info().Str("subject", c.subject).Msg("started consuming price ticks from NATS")

	<-ctx.Done()
	if err := sub.Drain(); err != nil {
		c.logger.Warn().Err(err).Msg("drain subscription")
	}
	c.logger.Info().Msg("stopped consuming price ticks")
	return nil
}

func (c *Consumer) handleMessage(msg *nats.Msg) {
	var event PriceEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		c.logger.Warn().Err(err).
			Str("subject", msg.Subject).
			Msg("failed to unmarshal price event, skipping")
		return
	}

	if err := event.Validate(); err != nil {
		c.logger.Warn().Err(err).
			Str("symbol", event.Symbol).
			Str("subject", msg.Subject).
			Msg("invalid price event, skipping")
		return
	}

	c.sink.SetPrice(event.Symbol, event.Price)

	c.logger.Debug().
		Str("symbol", event.Symbol).
		Str("price", event.Price.String()).
		Msg("applied price tick")
}

// ConnectNATS connects to NATS with retry logic.
func ConnectNATS(urls string, credsFile, creds string) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Name("portfoliohub"),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("reconnected to NATS")
		}),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("disconnected from NATS")
			}
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
	}

	// Add credentials if configured
	if creds != "" {
		tmpFile, err := os.CreateTemp("", "nats-creds-*.creds")
		if err != nil {
			return nil, fmt.Errorf("create temp credentials file: %w", err)
		}
		if _, err := tmpFile.WriteString(creds); err != nil {
			tmpFile.Close()
			os.Remove(tmpFile.Name())
			return nil, fmt.Errorf("write credentials: %w", err)
		}
		tmpFile.Close()
		opts = append(opts, nats.UserCredentials(tmpFile.Name()))
	} else if credsFile != "" {
		opts = append(opts, nats.UserCredentials(credsFile))
	}

	// Retry connection
	var nc *nats.Conn
	var err error
	backoff := 100 * time.Millisecond
	maxBackoff := 30 * time.Second

	for attempt := 1; ; attempt++ {
		nc, err = nats.Connect(urls, opts...)
		if err == nil {
			log.Info().Str("url", nc.ConnectedUrl()).Int("attempt", attempt).Msg("connected to NATS")
			return nc, nil
		}

		log.Warn().Err(err).Int("attempt", attempt).Dur("backoff", backoff).
			Msg("failed to connect to NATS, retrying...")
		time.Sleep(backoff)

		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"launchfeed/internal/jsonv"
	"launchfeed/internal/logging"
	"launchfeed/internal/transform"
	"launchfeed/sink"
)

type Config struct {
	Brokers  []string `yaml:"brokers"`
	Topic    string   `yaml:"topic"`
	Acks     int16    `yaml:"required_acks"` // 0,1,-1
	Version  string   `yaml:"version"`        // "" = sarama default
	ClientID string   `yaml:"client_id"`
}

type driver struct {
	cfg Config
	p   sarama.SyncProducer
}

func (d *driver) Configure(c any) error {
	cfg, ok := c.(Config)
	if !ok {
		return fmt.Errorf("kafka-sink: want Config, got %T", c)
	}
	if len(cfg.Brokers) == 0 || cfg.Topic == "" {
		return fmt.Errorf("kafka-sink: brokers and topic are required")
	}
	d.cfg = cfg

	sc := sarama.NewConfig()
	sc.Producer.RequiredAcks = sarama.RequiredAcks(cfg.Acks)
	sc.Producer.Return.Successes = true
	if cfg.ClientID != "" {
		sc.ClientID = cfg.ClientID
	}
	if cfg.Version != "" {
		ver, err := sarama.ParseKafkaVersion(cfg.Version)
		if err != nil {
			return err
		}
		sc.Version = ver
	}
	var err error
	d.p, err = sarama.NewSyncProducer(cfg.Brokers, sc)
	return err
}

// Push publishes every record of the envelope as its own message.
func (d *driver) Push(_ context.Context, b *sink.Batch) error {
	recs, err := transform.Records(b.Envelope)
	if err != nil {
		return fmt.Errorf("kafka-sink: %w", err)
	}
	if len(recs) == 0 {
		return nil
	}
	msgs := make([]*sarama.ProducerMessage, 0, len(recs))
	for _, rec := range recs {
		m, err := d.message(b, rec)
		if err != nil {
			return err
		}
		msgs = append(msgs, m)
	}
	if err := d.p.SendMessages(msgs); err != nil {
		return fmt.Errorf("kafka-sink: send: %w", err)
	}
	logging.L().Info("kafka-sink: published records", "topic", d.cfg.Topic, "count", len(msgs), "run_id", b.RunID)
	return nil
}

func (d *driver) message(b *sink.Batch, rec *jsonv.Object) (*sarama.ProducerMessage, error) {
	val, err := jsonv.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("kafka-sink: encode: %w", err)
	}
	m := &sarama.ProducerMessage{
		Topic: d.cfg.Topic,
		Value: sarama.ByteEncoder(val),
		Headers: []sarama.RecordHeader{
			{Key: []byte("run_id"), Value: []byte(b.RunID)},
			{Key: []byte("fetched_at"), Value: []byte(b.FetchedAt.UTC().Format(time.RFC3339))},
		},
	}
	if name, ok := rec.Get("name"); ok {
		if s, ok := name.(string); ok && s != "" {
			m.Key = sarama.StringEncoder(s)
		}
	}
	return m, nil
}

func (d *driver) Close() error {
	if d.p == nil {
		return nil
	}
	err := d.p.Close()
	d.p = nil
	return err
}

func init() { sink.Register("kafka", func() sink.Adapter { return &driver{} }) }

package pipeline

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/nakshatra-tomar/civic-contact-extract/internal/config"
	"github.com/nakshatra-tomar/civic-contact-extract/internal/couchbase"
	"github.com/nakshatra-tomar/civic-contact-extract/internal/export"
	"github.com/nakshatra-tomar/civic-contact-extract/internal/kafka"
)

// BuildSinks opens one sink per configured output format, in order. When one
// fails to open, the ones already opened are closed.
func BuildSinks(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (sinks []export.Sink, err error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	defer func() {
		if err != nil {
			_ = export.CloseAll(sinks)
			sinks = nil
		}
	}()

	names := export.FileNames{
		People:        cfg.Output.PeopleFile,
		Organizations: cfg.Output.OrganizationsFile,
	}

	for _, format := range cfg.Output.Formats {
		var s export.Sink
		switch format {
		case config.FormatCSV:
			s = export.NewCSVSink(cfg.Output.Dir, names)
		case config.FormatXLSX:
			s = export.NewXLSXSink(cfg.Output.Dir, names)
		case config.FormatSQL:
			s, err = export.OpenSQLSink(ctx, cfg.SQL.Driver, cfg.SQL.DSN)
		case config.FormatKafka:
			s, err = openKafkaSink(cfg.Kafka, logger)
		case config.FormatCouchbase:
			s, err = openCouchbaseSink(cfg.Couchbase, logger)
		default:
			err = fmt.Errorf("unknown output format %q", format)
		}
		if err != nil {
			return sinks, fmt.Errorf("open %s sink: %w", format, err)
		}
		logger.WithField("sink", s.Name()).Debug("sink ready")
		sinks = append(sinks, s)
	}
	return sinks, nil
}

func openKafkaSink(cfg config.KafkaConfig, logger logrus.FieldLogger) (export.Sink, error) {
	producer, err := kafka.NewProducer(kafka.ProducerConfig{
		Brokers:       cfg.Brokers,
		ClientID:      cfg.ClientID,
		RetryAttempts: cfg.RetryAttempts,
		Timeout:       cfg.Timeout,
	}, logger)
	if err != nil {
		return nil, err
	}
	return export.NewKafkaSink(producer, export.Topics{
		People:        cfg.PeopleTopic,
		Organizations: cfg.OrganizationsTopic,
	}), nil
}

func openCouchbaseSink(cfg config.CouchbaseConfig, logger logrus.FieldLogger) (export.Sink, error) {
	client, err := couchbase.NewClient(couchbase.Config{
		ConnectionString: cfg.ConnectionString,
		Username:         cfg.Username,
		Password:         cfg.Password,
		BucketName:       cfg.Bucket,
		ScopeName:        cfg.Scope,
		CollectionName:   cfg.Collection,
		ConnectTimeout:   cfg.Timeout,
		OperationTimeout: cfg.Timeout,
	}, logger)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping couchbase: %w", err)
	}
	return export.NewCouchbaseSink(couchbase.NewContactRepository(client), client.Close), nil
}

package couchbase

import (
	"fmt"
	"time"

	"github.com/couchbase/gocb/v2"
	"github.com/sirupsen/logrus"
)

// Client wraps Cluster/Bucket/Collection handles plus config+logger.
type Client struct {
	cluster    *gocb.Cluster
	collection *gocb.Collection
	config     Config
	logger     logrus.FieldLogger
}

// Config holds connection and keyspace details.
type Config struct {
	ConnectionString string        `json:"connection_string"`
	Username         string        `json:"username"`
	Password         string        `json:"password"`
	BucketName       string        `json:"bucket_name"`
	ScopeName        string        `json:"scope_name"`
	CollectionName   string        `json:"collection_name"`
	ConnectTimeout   time.Duration `json:"connect_timeout"`
	OperationTimeout time.Duration `json:"operation_timeout"`
}

func (c *Config) applyDefaults() {
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = 10 * time.Second
	}
	if c.OperationTimeout == 0 {
		c.OperationTimeout = 5 * time.Second
	}
	if c.ScopeName == "" {
		c.ScopeName = "_default"
	}
	if c.CollectionName == "" {
		c.CollectionName = "_default"
	}
}

// NewClient connects to Couchbase, opens the bucket/scope/collection, and waits for readiness.
func NewClient(config Config, logger logrus.FieldLogger) (*Client, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if config.BucketName == "" {
		return nil, fmt.Errorf("couchbase bucket cannot be empty")
	}
	config.applyDefaults()

	opts := gocb.ClusterOptions{
		Authenticator: gocb.PasswordAuthenticator{
			Username: config.Username,
			Password: config.Password,
		},
		TimeoutsConfig: gocb.TimeoutsConfig{
			ConnectTimeout: config.ConnectTimeout,
			KVTimeout:      config.OperationTimeout,
		},
	}

	cluster, err := gocb.Connect(config.ConnectionString, opts)
	if err != nil {
		return nil, fmt.Errorf("connect cluster: %w", err)
	}

	bucket := cluster.Bucket(config.BucketName)
	if err := bucket.WaitUntilReady(config.ConnectTimeout, nil); err != nil {
		_ = cluster.Close(nil)
		return nil, fmt.Errorf("bucket not ready: %w", err)
	}

	c := &Client{
		cluster:    cluster,
		collection: bucket.Scope(config.ScopeName).Collection(config.CollectionName),
		config:     config,
		logger:     logger,
	}

	logger.WithFields(logrus.Fields{
		"bucket":     config.BucketName,
		"scope":      config.ScopeName,
		"collection": config.CollectionName,
	}).Info("connected to Couchbase")

	return c, nil
}

// Close shuts down the cluster connection.
func (c *Client) Close() error {
	if c.cluster != nil {
		return c.cluster.Close(nil)
	}
	return nil
}

// Ping performs a KV health check against the cluster.
func (c *Client) Ping() error {
	_, err := c.cluster.Ping(&gocb.PingOptions{
		ServiceTypes: []gocb.ServiceType{gocb.ServiceTypeKeyValue},
	})
	return err
}

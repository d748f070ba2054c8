package infra

import (
	"errors"
	"path/filepath"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/fystack/lotofacil-generator/pkg/common/config"
	"github.com/fystack/lotofacil-generator/pkg/common/constant"
	"github.com/fystack/lotofacil-generator/pkg/common/logger"
	"github.com/fystack/lotofacil-generator/pkg/retry"
)

func GetNATSConnection(natsConfig config.NatsConfig, environment string) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.MaxReconnects(-1), // retry forever
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectHandler(func(nc *nats.Conn) {
			logger.Warn("Disconnected from NATS")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed!")
		}),
		nats.ErrorHandler(NatsErrHandler),
	}

	natsURL := natsConfig.URL
	if natsURL == "" {
		natsURL = nats.DefaultURL
	}

	if environment == constant.EnvProduction {
		clientCert := natsConfig.TLS.ClientCert
		clientKey := natsConfig.TLS.ClientKey
		caCert := natsConfig.TLS.CACert
		if clientCert == "" {
			clientCert = filepath.Join(".", "certs", "client-cert.pem")
		}
		if clientKey == "" {
			clientKey = filepath.Join(".", "certs", "client-key.pem")
		}
		if caCert == "" {
			caCert = filepath.Join(".", "certs", "rootCA.pem")
		}
		opts = append(opts,
			nats.ClientCert(clientCert, clientKey),
			nats.RootCAs(caCert),
			nats.UserInfo(natsConfig.Username, natsConfig.Password),
		)
	}

	var nc *nats.Conn
	err := retry.Exponential(func() error {
		var err error
		nc, err = nats.Connect(natsURL, opts...)
		return natsDialError(err)
	}, retry.ExponentialConfig{
		InitialInterval: 500 * time.Millisecond,
		MaxElapsedTime:  30 * time.Second,
		OnRetry: func(err error, next time.Duration) {
			logger.Warn("NATS connect failed, retrying", "url", natsURL, "err", err, "next", next)
		},
	})
	return nc, err
}

// natsDialError marks credential failures permanent; retrying them only
// delays the inevitable error.
func natsDialError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, nats.ErrAuthorization),
		errors.Is(err, nats.ErrAuthExpired),
		errors.Is(err, nats.ErrAuthRevoked),
		errors.Is(err, nats.ErrAccountAuthExpired):
		return retry.Permanent(err)
	}
	return err
}

func NatsErrHandler(nc *nats.Conn, sub *nats.Subscription, natsErr error) {
	logger.Error("NATS error", "err", natsErr)
	if natsErr == nats.ErrSlowConsumer && sub != nil {
		pendingMsgs, _, err := sub.Pending()
		if err != nil {
			logger.Error("Error getting pending messages", "err", err)
			return
		}
		logger.Error("Falling behind with pending messages on subject", "pending", pendingMsgs, "subject", sub.Subject)
	}
}

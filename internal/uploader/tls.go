package uploader

import (
	"crypto/tls"
	"crypto/x509"
	stderrors "errors"
	"net"
	"net/http"
	"time"
)

// newTransport clones the base transport for one upload. With
// ignoreHostname the certificate chain is still verified and only a
// hostname mismatch is tolerated; each tolerated mismatch is logged.
func (u *Uploader) newTransport(scheme, hostname string, ignoreHostname bool) *http.Transport {
	t := u.base.Clone()
	if t.DialContext == nil {
		t.DialContext = (&net.Dialer{
			Timeout:   u.dialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext
	}

	if ignoreHostname && scheme == "https" {
		cfg := &tls.Config{}
		if t.TLSClientConfig != nil {
			cfg = t.TLSClientConfig.Clone()
		}
		cfg.InsecureSkipVerify = true
		cfg.VerifyConnection = verifyChainOnly(cfg.RootCAs, hostname, u.logger)
		t.TLSClientConfig = cfg
	}
	return t
}

func verifyChainOnly(roots *x509.CertPool, hostname string, logger Logger) func(tls.ConnectionState) error {
	return func(cs tls.ConnectionState) error {
		if len(cs.PeerCertificates) == 0 {
			return stderrors.New("tls: server presented no certificate")
		}
		opts := x509.VerifyOptions{
			Roots:         roots,
			Intermediates: x509.NewCertPool(),
		}
		for _, cert := range cs.PeerCertificates[1:] {
			opts.Intermediates.AddCert(cert)
		}
		if _, err := cs.PeerCertificates[0].Verify(opts); err != nil {
			return err
		}
		if cs.PeerCertificates[0].VerifyHostname(hostname) == nil {
			return nil
		}
		logger.Debugf("SSL verification ignored for current session and hostname: %s", hostname)
		return nil
	}
}

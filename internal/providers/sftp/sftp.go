// Package sftp fetches the offers data file from a remote host over
// SFTP, for deployments where the catalog is published to a drop
// directory instead of shipped with the binary.
package sftp

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

type Config struct {
	Host                  string
	Port                  int
	User                  string
	Pass                  string
	RemoteDir             string
	RemoteFile            string
	KnownHostsFile        string
	InsecureIgnoreHostKey bool
}

// withDefaults fills the optional fields: port 22, root remote dir,
// data.json, and the user's own known_hosts file.
func (c Config) withDefaults() Config {
	if c.Port <= 0 {
		c.Port = 22
	}
	if c.RemoteDir == "" {
		c.RemoteDir = "/"
	}
	if c.RemoteFile == "" {
		c.RemoteFile = "data.json"
	}
	if c.KnownHostsFile == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.KnownHostsFile = filepath.Join(home, ".ssh", "known_hosts")
		}
	}
	return c
}

// hostKeyCallback verifies the host against the known_hosts file.
// The insecure flag opts out, for dev setups without a provisioned file.
func hostKeyCallback(cfg Config) (ssh.HostKeyCallback, error) {
	if cfg.InsecureIgnoreHostKey {
		return ssh.InsecureIgnoreHostKey(), nil
	}
	cb, err := knownhosts.New(cfg.KnownHostsFile)
	if err != nil {
		return nil, fmt.Errorf("sftp: load known_hosts %s: %w", cfg.KnownHostsFile, err)
	}
	return cb, nil
}

type Source struct {
	cfg Config
}

func New(cfg Config) *Source {
	return &Source{cfg: cfg}
}

func (s *Source) Name() string { return "sftp" }

func (s *Source) Fetch(ctx context.Context) ([]byte, error) {
	cfg := s.cfg
	if cfg.Host == "" || cfg.User == "" || cfg.Pass == "" {
		return nil, fmt.Errorf("sftp: missing env SFTP_HOST / SFTP_USER / SFTP_PASS")
	}
	cfg = cfg.withDefaults()

	cb, err := hostKeyCallback(cfg)
	if err != nil {
		return nil, err
	}

	sshCfg := &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            []ssh.AuthMethod{ssh.Password(cfg.Pass)},
		HostKeyCallback: cb,
		Timeout:         20 * time.Second,
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	// ctx para timeout/cancel
	type dialRes struct {
		client *ssh.Client
		err    error
	}
	ch := make(chan dialRes, 1)
	go func() {
		c, err := ssh.Dial("tcp", addr, sshCfg)
		ch <- dialRes{client: c, err: err}
	}()

	var sshClient *ssh.Client
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("sftp: dial canceled: %w", ctx.Err())
	case r := <-ch:
		if r.err != nil {
			return nil, fmt.Errorf("sftp: dial error: %w", r.err)
		}
		sshClient = r.client
	}
	defer sshClient.Close()

	sftpCli, err := sftp.NewClient(sshClient)
	if err != nil {
		return nil, fmt.Errorf("sftp: new client: %w", err)
	}
	defer sftpCli.Close()

	remotePath := path.Join(cfg.RemoteDir, cfg.RemoteFile)
	src, err := sftpCli.Open(remotePath)
	if err != nil {
		return nil, fmt.Errorf("sftp: open remote file %s: %w", remotePath, err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("sftp: download copy: %w", err)
	}
	return data, nil
}

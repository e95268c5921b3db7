package git

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/subboot/pkg/config"
	"github.com/spf13/afero"
)

// CredentialKind selects how a remote is authenticated
type CredentialKind int

const (
	// Anonymous uses no credential; suitable for public https remotes.
	Anonymous CredentialKind = iota
	// Username authenticates over SSH through a running ssh-agent.
	Username
	// SSHKey authenticates over SSH with an explicit keypair.
	SSHKey
)

func (k CredentialKind) String() string {
	switch k {
	case Username:
		return "username"
	case SSHKey:
		return "ssh-key"
	default:
		return "anonymous"
	}
}

// Credential is the authentication chosen for one remote
type Credential struct {
	Kind       CredentialKind
	Username   string
	PublicKey  string
	PrivateKey string
}

// ResolveCredential picks the credential for remote. SSH remotes use the
// agent when agentSocket is set, otherwise the configured keypair when both
// files exist. Everything else is anonymous.
func ResolveCredential(remote string, ssh config.SSHSettings, agentSocket string, fsys afero.Fs) Credential {
	if !IsSSHURL(remote) {
		return Credential{Kind: Anonymous}
	}

	user := ssh.Username
	if user == "" {
		user = urlUser(remote)
	}

	if agentSocket != "" {
		return Credential{Kind: Username, Username: user}
	}

	if ssh.PublicKey != "" && ssh.PrivateKey != "" &&
		fileExists(fsys, ssh.PublicKey) && fileExists(fsys, ssh.PrivateKey) {
		return Credential{
			Kind:       SSHKey,
			Username:   user,
			PublicKey:  ssh.PublicKey,
			PrivateKey: ssh.PrivateKey,
		}
	}

	return Credential{Kind: Anonymous}
}

// Env returns the variables git needs for this credential
func (c Credential) Env() []string {
	env := []string{"GIT_TERMINAL_PROMPT=0"}
	if c.Kind == SSHKey {
		env = append(env, fmt.Sprintf("GIT_SSH_COMMAND=ssh -i %s -o IdentitiesOnly=yes", shellQuote(c.PrivateKey)))
	}
	return env
}

// IsSSHURL reports whether remote is reached over SSH, either as an
// ssh:// URL or in scp-like user@host:path form.
func IsSSHURL(remote string) bool {
	switch {
	case strings.HasPrefix(remote, "ssh://"), strings.HasPrefix(remote, "git+ssh://"), strings.HasPrefix(remote, "ssh+git://"):
		return true
	case strings.Contains(remote, "://"):
		return false
	}

	colon := strings.Index(remote, ":")
	if colon <= 0 {
		return false
	}
	// a slash before the colon means a local path such as ./a:b
	return !strings.Contains(remote[:colon], "/")
}

func urlUser(remote string) string {
	if i := strings.Index(remote, "://"); i >= 0 {
		remote = remote[i+3:]
	}
	at := strings.Index(remote, "@")
	if at <= 0 {
		return ""
	}
	if slash := strings.IndexAny(remote, "/:"); slash >= 0 && slash < at {
		return ""
	}
	return remote[:at]
}

func fileExists(fsys afero.Fs, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && !info.IsDir()
}

func shellQuote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\n'\"\\$`;&|<>()*?[]#~") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"mikrotik-hosts/internal/config"
	"mikrotik-hosts/internal/logging"
	"mikrotik-hosts/internal/mikrotik"
	"mikrotik-hosts/internal/monitor"
	"mikrotik-hosts/internal/resolver"
	"mikrotik-hosts/internal/shell"
	"mikrotik-hosts/internal/store"
	"mikrotik-hosts/internal/syncer"
	"mikrotik-hosts/pkg/utils"
)

var (
	sha1ver   string
	buildTime string
	repoName  string
)

// CLI describes the command-line flags; unset flags leave file and environment values in place
type CLI struct {
	Config     string        `kong:"short='c',default='${config_file}',help='Configuration file.'"`
	Flush      bool          `kong:"short='f',help='Flush DNS records before updating.'"`
	User       string        `kong:"short='u',help='MikroTik device user name (default admin).'"`
	Host       string        `kong:"short='t',help='MikroTik device IP address (default 192.168.88.1).'"`
	Port       int           `kong:"short='p',help='MikroTik device SSH listen port (default 22).'"`
	Suffix     string        `kong:"short='s',help='Domain suffix appended to host names (default lan).'"`
	HostsFile  string        `kong:"name='hosts-file',help='Hosts file to update (default /etc/hosts).'"`
	SSH        string        `kong:"name='ssh',help='ssh client binary.'"`
	Timeout    time.Duration `kong:"help='Timeout for each router command.'"`
	NameSource string        `kong:"name='name-source',help='Name for the router itself: board, identity or none.'"`
	DryRun     bool          `kong:"name='dry-run',short='n',help='Print the new hosts file instead of writing it.'"`
	Watch      bool          `kong:"short='w',help='Keep running and resync periodically.'"`
	Interval   time.Duration `kong:"help='Resync period in watch mode.'"`
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("mikrotik-hosts"),
		kong.Description("Reads host names from a MikroTik DHCP server and updates the system hosts file."),
		kong.Vars{"config_file": config.DefaultConfigFile},
	)

	log := logging.New(os.Stderr, os.Getenv(logging.EnvLevel))
	log.Debugf("%s: Build %s, Time %s", repoName, sha1ver, buildTime)

	cfg, err := config.New(cli.Config, config.Flags{
		User:       cli.User,
		Host:       cli.Host,
		Port:       cli.Port,
		SSH:        cli.SSH,
		Timeout:    cli.Timeout,
		HostsFile:  cli.HostsFile,
		Suffix:     cli.Suffix,
		NameSource: cli.NameSource,
		Flush:      cli.Flush,
		DryRun:     cli.DryRun,
		Watch:      cli.Watch,
		Interval:   cli.Interval,
	}, log)
	utils.CheckFatal(log, err, "Failed to load configuration")

	nameSource, err := mikrotik.ParseNameSource(cfg.NameSource)
	utils.CheckFatal(log, err, "Failed to load configuration")

	runner := shell.NewExec(log, cfg.Timeout)

	client := mikrotik.NewClient(runner, log, cfg.User, cfg.Host, cfg.Port)
	client.SSH = cfg.SSH

	sync := syncer.New(
		client,
		resolver.NewFlusher(runner, log),
		store.NewHostsFile(cfg.HostsFile, log),
		syncer.Options{
			Suffix:     cfg.Suffix,
			NameSource: nameSource,
			Flush:      cfg.Flush,
			DryRun:     cfg.DryRun,
			Output:     os.Stdout,
		},
		log,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !cfg.Watch {
		_, err := sync.Run(ctx)
		utils.CheckFatal(log, err, "Hosts update failed")
		return
	}

	mon := monitor.New(sync, cfg.HostsFile, cfg.Interval, log)
	utils.CheckFatal(log, mon.Start(ctx), "Failed to start monitor")

	<-ctx.Done()
	log.Info("Shutting down...")
	mon.Stop()
}

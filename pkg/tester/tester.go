// Package tester wires the registry, script generation, build execution and
// record keeping into the "test a distribution" operation.
package tester

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/mirror-tools/mirror-test/pkg/buildlog"
	"github.com/mirror-tools/mirror-test/pkg/config"
	"github.com/mirror-tools/mirror-test/pkg/docker"
	"github.com/mirror-tools/mirror-test/pkg/dockerfile"
	"github.com/mirror-tools/mirror-test/pkg/errors"
	"github.com/mirror-tools/mirror-test/pkg/global"
	"github.com/mirror-tools/mirror-test/pkg/util/console"
)

type Options struct {
	BuildTool string
	Timeout   time.Duration
	NoCache   bool
	// Cleanup removes the image after a successful build. Failed builds keep
	// their tag for inspection either way.
	Cleanup bool
}

// Result is one distribution's test outcome. Err is set for configuration
// problems; a Record exists even then so batch results stay complete.
type Result struct {
	Distribution string
	Passed       bool
	Record       *buildlog.Record
	Err          error
}

type Tester struct {
	cfg     *config.Config
	store   *buildlog.Store
	history *buildlog.History
	opts    Options

	// group guarantees at most one in-flight build per distribution:
	// concurrent triggers for the same name coalesce onto one build and
	// share its result.
	group singleflight.Group
}

func New(cfg *config.Config, store *buildlog.Store, history *buildlog.History, opts Options) *Tester {
	if opts.BuildTool == "" {
		opts.BuildTool = global.DefaultBuildTool
	}
	if opts.Timeout == 0 {
		opts.Timeout = global.DefaultTimeout
	}
	return &Tester{cfg: cfg, store: store, history: history, opts: opts}
}

func (t *Tester) Config() *config.Config {
	return t.cfg
}

func (t *Tester) Store() *buildlog.Store {
	return t.store
}

func (t *Tester) History() *buildlog.History {
	return t.history
}

// Test builds and records one distribution. Unknown distributions produce a
// failed Result with a recorded failure record rather than aborting.
func (t *Tester) Test(ctx context.Context, name string) Result {
	v, _, _ := t.group.Do(name, func() (interface{}, error) {
		return t.run(ctx, name), nil
	})
	return v.(Result)
}

// TestMany tests the named distributions sequentially. Per-distribution
// failures never abort the batch; the result map is always complete.
func (t *Tester) TestMany(ctx context.Context, names []string) map[string]Result {
	results := make(map[string]Result, len(names))
	for _, name := range names {
		results[name] = t.Test(ctx, name)
	}
	return results
}

// TestAll tests every configured distribution in sorted registry order.
func (t *Tester) TestAll(ctx context.Context) map[string]Result {
	return t.TestMany(ctx, t.cfg.DistributionNames())
}

// Dockerfile returns the script that Test would build for a distribution.
func (t *Tester) Dockerfile(name string) (string, error) {
	return dockerfile.GenerateFromConfig(t.cfg, name)
}

// Latest returns the most recent build record for a distribution.
func (t *Tester) Latest(name string) (*buildlog.Record, error) {
	return t.store.Latest(name)
}

func (t *Tester) run(ctx context.Context, name string) Result {
	dist := t.cfg.Distribution(name)
	if dist == nil {
		err := errors.DistributionNotFound(fmt.Sprintf("distribution %s not found in configuration", name))
		record := &buildlog.Record{
			Distribution:  name,
			Timestamp:     time.Now(),
			ReturnCode:    1,
			HasReturnCode: true,
			Stderr:        err.Error(),
		}
		t.record(record)
		return Result{Distribution: name, Passed: false, Record: record, Err: err}
	}

	script := dockerfile.Generate(name, dist, t.cfg.PackageManager(dist.PackageManager), t.cfg.Variables)
	tag := global.ImagePrefix + ":" + name

	console.Infof("Testing %s repository using build process...", name)
	buildResult := docker.Build(ctx, script, docker.BuildOptions{
		Tool:    t.opts.BuildTool,
		Tag:     tag,
		NoCache: t.opts.NoCache,
		Timeout: t.opts.Timeout,
	})

	record := &buildlog.Record{
		Distribution:  name,
		Timestamp:     time.Now(),
		ReturnCode:    buildResult.ExitCode,
		HasReturnCode: true,
		Dockerfile:    script,
		Stdout:        buildResult.Stdout,
		Stderr:        buildResult.Stderr,
	}
	t.record(record)

	t.cleanup(buildResult.ExitCode == 0, tag)

	return Result{Distribution: name, Passed: buildResult.ExitCode == 0, Record: record}
}

func (t *Tester) record(record *buildlog.Record) {
	if err := t.store.Append(record); err != nil {
		console.Warnf("Failed to write build log for %s: %s", record.Distribution, err)
	}
	if t.history == nil {
		return
	}
	err := t.history.Add(buildlog.HistoryEntry{
		Distribution: record.Distribution,
		Timestamp:    record.Timestamp,
		Success:      record.Passed(),
		ReturnCode:   record.ReturnCode,
	})
	if err != nil {
		console.Warnf("Failed to update build history: %s", err)
	}
}

func (t *Tester) cleanup(succeeded bool, tag string) {
	if succeeded {
		if !t.opts.Cleanup {
			console.Infof("Cleanup disabled, keeping image %s", tag)
			return
		}
		if err := docker.RemoveImage(t.opts.BuildTool, tag); err != nil {
			console.Warnf("%s", err)
		}
		return
	}
	// The failed tag stays around for inspection; only untagged layers from
	// the aborted build get pruned.
	if t.opts.Cleanup {
		if err := docker.PruneDangling(t.opts.BuildTool); err != nil {
			console.Debugf("%s", err)
		}
	}
}

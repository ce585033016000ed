package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/rknit/whiskc/internal/buildpipeline"
	"github.com/rknit/whiskc/internal/ui"
)

// runBuildWithUI runs the build and the progress view side by side. The
// view exits once the build closes the event channel.
func runBuildWithUI(ctx context.Context, title string, files []string, req *buildpipeline.Request) ([]buildpipeline.UnitResult, error) {
	if req == nil {
		return nil, fmt.Errorf("missing build request")
	}
	events := make(chan buildpipeline.Event, 256)

	var (
		units    []buildpipeline.UnitResult
		buildErr error
	)
	var g errgroup.Group
	g.Go(func() error {
		defer close(events)
		reqCopy := *req
		reqCopy.Progress = buildpipeline.ChannelSink{Ch: events}
		units, buildErr = buildpipeline.Build(ctx, &reqCopy)
		return nil
	})
	g.Go(func() error {
		program := tea.NewProgram(ui.NewProgressModel(title, files, events), tea.WithOutput(os.Stdout))
		if _, err := program.Run(); err != nil {
			// keep draining so the build never blocks on a full channel
			for range events {
			}
			return fmt.Errorf("progress view: %w", err)
		}
		return nil
	})
	uiErr := g.Wait()
	return units, errors.Join(buildErr, uiErr)
}

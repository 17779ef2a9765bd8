// Package container implements the isolated install strategy: the package
// is handed to a distrobox container and installed by the container's own
// package manager, then exported back to the host menu.
package container

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/shiro123444/sideload/internal/logger"
	"github.com/shiro123444/sideload/pkg/errors"
	"github.com/shiro123444/sideload/pkg/model"
)

// Default container identity.
const (
	DefaultName  = "ubuntu-apps"
	DefaultImage = "ubuntu:24.04"
)

const tool = "distrobox"

// Strategy installs DEB packages inside a named container.
type Strategy struct {
	Name  string
	Image string
}

// NewStrategy creates a Strategy. Empty arguments fall back to the
// defaults.
func NewStrategy(name, image string) *Strategy {
	if name == "" {
		name = DefaultName
	}
	if image == "" {
		image = DefaultImage
	}
	return &Strategy{Name: name, Image: image}
}

// Install runs the container install sequence: ensure the container
// exists, install the package with apt, repair dependencies, export the
// app. Every step's exit status is checked, so an in-container failure
// surfaces as an install failure rather than silent success.
func (s *Strategy) Install(ctx context.Context, p *model.Package) (model.InstallResult, error) {
	if _, err := exec.LookPath(tool); err != nil {
		return model.InstallResult{}, errors.ErrContainerToolMissing
	}

	if err := s.ensureContainer(ctx); err != nil {
		return model.InstallResult{}, err
	}

	appID := p.AppID()
	steps := []struct {
		name string
		args []string
	}{
		{"install", []string{"enter", "-n", s.Name, "--", "sudo", "apt", "install", "-y", p.SourcePath}},
		{"repair-dependencies", []string{"enter", "-n", s.Name, "--", "sudo", "apt", "install", "-f", "-y"}},
		{"export", []string{"enter", "-n", s.Name, "--", "distrobox-export", "--app", appID}},
	}
	for _, step := range steps {
		if err := s.run(ctx, step.name, step.args); err != nil {
			return model.InstallResult{}, err
		}
	}

	return model.InstallResult{
		Success:      true,
		Message:      fmt.Sprintf("%s installed into container %s", p.Name, s.Name),
		AppID:        appID,
		ViaContainer: true,
		Confirmation: model.ConfirmationVerified,
	}, nil
}

// ensureContainer creates the container from the base image when the list
// output does not mention it yet.
func (s *Strategy) ensureContainer(ctx context.Context) error {
	out, err := exec.CommandContext(ctx, tool, "list", "--no-color").Output()
	if err == nil && strings.Contains(string(out), s.Name) {
		return nil
	}

	logger.Info("creating container", logger.Fields{"name": s.Name, "image": s.Image})
	return s.run(ctx, "create", []string{"create", "-i", s.Image, "-n", s.Name, "-Y"})
}

func (s *Strategy) run(ctx context.Context, step string, args []string) error {
	out, err := exec.CommandContext(ctx, tool, args...).CombinedOutput()
	if err != nil {
		return errors.Wrapf(errors.ErrContainerStep, "%s: %s", step, strings.TrimSpace(string(out)))
	}
	return nil
}

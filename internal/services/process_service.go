package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"cleanguard-backend/internal/cache"
	"cleanguard-backend/internal/logger"
	"cleanguard-backend/internal/models"
	"cleanguard-backend/internal/repositories"
)

type ProcessService struct {
	Repo *repositories.ProcessRepository
	Logs *SystemLogService
}

func NewProcessService(repo *repositories.ProcessRepository, logs *SystemLogService) *ProcessService {
	return &ProcessService{Repo: repo, Logs: logs}
}

// Names returns the dictionary in creation order
func (s *ProcessService) Names(ctx context.Context) ([]string, error) {
	return s.Repo.Names(ctx)
}

// Query returns every process with the number of employees using it
func (s *ProcessService) Query(ctx context.Context) ([]*models.Process, error) {
	if data, ok := cache.GetCached(ctx, cache.ProcessListKey); ok {
		var processes []*models.Process
		if err := json.Unmarshal(data, &processes); err == nil {
			return processes, nil
		}
	}

	processes, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(processes); err == nil {
		cache.SetCached(ctx, cache.ProcessListKey, data, 10*time.Minute)
	}
	return processes, nil
}

func (s *ProcessService) Add(ctx context.Context, name, operator string) (*models.Process, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationf("process name is required")
	}

	p, err := s.Repo.Create(ctx, name)
	if err != nil {
		return nil, classify(err, "", fmt.Sprintf("process %s already exists", name))
	}

	cache.InvalidateProcessCaches(ctx)
	s.Logs.record(ctx, models.LogTypeProcess, operator, processAddedPrefix+" "+name)
	return p, nil
}

func (s *ProcessService) Delete(ctx context.Context, name, operator string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return validationf("process name is required")
	}

	if err := s.Repo.Delete(ctx, name); err != nil {
		return classify(err, fmt.Sprintf("process %s does not exist", name), "")
	}

	cache.InvalidateProcessCaches(ctx)
	s.Logs.record(ctx, models.LogTypeProcess, operator, processDeletedPrefix+" "+name)
	return nil
}

// Rename changes a process name and moves every employee to the new name
func (s *ProcessService) Rename(ctx context.Context, oldName, newName, operator string) error {
	oldName = strings.TrimSpace(oldName)
	newName = strings.TrimSpace(newName)
	if oldName == "" || newName == "" {
		return validationf("both the old and the new process name are required")
	}
	if strings.EqualFold(oldName, newName) {
		return validationf("new name is the same as the old name")
	}

	moved, err := s.Repo.Rename(ctx, oldName, newName)
	if err != nil {
		return classify(err, fmt.Sprintf("process %s does not exist", oldName), fmt.Sprintf("process %s already exists", newName))
	}

	cache.InvalidateProcessCaches(ctx)
	logger.InfoLog(ctx, "[Process] renamed %s -> %s, %d employees moved", oldName, newName, moved)
	s.Logs.record(ctx, models.LogTypeProcess, operator, fmt.Sprintf("%s %s -> %s", processRenamedPrefix, oldName, newName))
	return nil
}

// Import adds every new name. Blank, repeated and existing names are skipped.
func (s *ProcessService) Import(ctx context.Context, names []string, operator string) (*models.ProcessImportResult, error) {
	unique := UniqueNames(names)
	if len(unique) == 0 {
		return nil, validationf("no process names to import")
	}

	added, err := s.Repo.CreateMissing(ctx, unique)
	if err != nil {
		return nil, err
	}

	result := &models.ProcessImportResult{Added: added, Skipped: len(names) - added}
	cache.InvalidateProcessCaches(ctx)
	s.Logs.record(ctx, models.LogTypeProcess, operator,
		fmt.Sprintf("%s: added %d, skipped %d", processImportedPrefix, result.Added, result.Skipped))
	return result, nil
}

// UniqueNames trims names, drops blanks and keeps the first of any
// case-insensitive repeats
func UniqueNames(names []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		key := strings.ToLower(n)
		if n == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	return out
}

// SplitNames breaks pasted text into names on newlines, commas and tabs
func SplitNames(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ',' || r == '，' || r == '\t' || r == ';'
	})
}

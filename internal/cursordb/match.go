package cursordb

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cairnlog/cairnlog/internal/debug"
)

// ErrNoWorkspacesFound is returned when no candidate databases exist at all.
var ErrNoWorkspacesFound = errors.New("cursordb: no workspace databases found")

const matchThreshold = 0.8

// MatchWorkspace scores each candidate database against repoPath and returns
// the best match, falling back to the most-recently-modified database if no
// candidate clears the confidence threshold.
func MatchWorkspace(ctx context.Context, repoPath string, candidates []string) (WorkspaceMatch, error) {
	if len(candidates) == 0 {
		return WorkspaceMatch{}, ErrNoWorkspacesFound
	}

	remotes := gitRemoteURLs(ctx, repoPath)
	normalizedRemotes := make([]string, 0, len(remotes))
	for _, r := range remotes {
		normalizedRemotes = append(normalizedRemotes, normalizeGitURL(r))
	}

	repoAbs, _ := filepath.Abs(repoPath)
	repoReal, err := filepath.EvalSymlinks(repoAbs)
	if err != nil {
		repoReal = repoAbs
	}
	repoBase := filepath.Base(repoAbs)

	var best WorkspaceMatch
	bestScore := -1.0
	var newestPath string
	var newestMod time.Time

	for _, dbPath := range candidates {
		info, err := os.Stat(dbPath)
		if err == nil && info.ModTime().After(newestMod) {
			newestMod = info.ModTime()
			newestPath = dbPath
		}

		folder, remote := readWorkspaceMeta(dbPath)

		score, matchType := scoreCandidate(folder, remote, repoAbs, repoReal, repoBase, remotes, normalizedRemotes)
		if score > bestScore {
			bestScore = score
			best = WorkspaceMatch{
				DBPath:          dbPath,
				Confidence:      score,
				MatchType:       matchType,
				WorkspaceFolder: folder,
				GitRemote:       remote,
			}
		}
	}

	if bestScore >= matchThreshold {
		return best, nil
	}

	debug.Logf("match: best score %.2f below threshold, falling back to most recent", bestScore)
	if newestPath == "" {
		newestPath = candidates[0]
	}
	return WorkspaceMatch{
		DBPath:     newestPath,
		Confidence: 0.0,
		MatchType:  MatchMostRecent,
	}, nil
}

func scoreCandidate(folder, remote, repoAbs, repoReal, repoBase string, remotes, normalizedRemotes []string) (float64, MatchType) {
	if remote != "" {
		for _, r := range remotes {
			if r == remote {
				return 1.0, MatchGitRemote
			}
		}
		normRemote := normalizeGitURL(remote)
		for _, r := range normalizedRemotes {
			if r == normRemote {
				return 0.95, MatchGitRemote
			}
		}
	}

	if folder != "" {
		folderPath := strings.TrimPrefix(folder, "file://")
		folderAbs, _ := filepath.Abs(folderPath)
		if folderAbs == repoAbs {
			return 0.85, MatchFolderPath
		}
		folderReal, err := filepath.EvalSymlinks(folderAbs)
		if err == nil && folderReal == repoReal {
			return 0.82, MatchFolderPath
		}

		ratio := similarityRatio(filepath.Base(folderAbs), repoBase)
		switch {
		case ratio >= 0.9:
			return 0.75, MatchFolderName
		case ratio >= 0.8:
			return 0.70, MatchFolderName
		case ratio >= 0.6:
			return 0.60, MatchFolderName
		default:
			return ratio * 0.5, MatchFolderName
		}
	}

	return 0.0, MatchMostRecent
}

// readWorkspaceMeta reads the sibling workspace.json next to a state.vscdb
// file, returning its recorded folder URI. Cursor stores workspace.json
// alongside state.vscdb in the same per-workspace directory. No git remote
// is read for a workspace: remote is always "", so the git-remote scoring
// rules in scoreCandidate never match and scoring starts at the folder
// rules.
func readWorkspaceMeta(dbPath string) (folder string, remote string) {
	metaPath := filepath.Join(filepath.Dir(dbPath), "workspace.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return "", ""
	}
	var parsed struct {
		Folder string `json:"folder"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		debug.Logf("match: malformed workspace.json at %s: %v", metaPath, err)
		return "", ""
	}
	return parsed.Folder, ""
}

// gitRemoteURLs runs `git remote -v` in repoPath with a 10-second timeout and
// returns the deduplicated set of remote URLs.
func gitRemoteURLs(ctx context.Context, repoPath string) []string {
	cctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cmd := exec.CommandContext(cctx, "git", "remote", "-v")
	cmd.Dir = repoPath
	out, err := cmd.Output()
	if err != nil {
		debug.Logf("match: git remote -v failed: %v", err)
		return nil
	}

	seen := make(map[string]struct{})
	var urls []string
	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		url := fields[1]
		if _, ok := seen[url]; ok {
			continue
		}
		seen[url] = struct{}{}
		urls = append(urls, url)
	}
	sort.Strings(urls)
	return urls
}

// normalizeGitURL strips a trailing .git suffix, converts an SSH shorthand
// (git@host:a/b) to https://host/a/b, lowercases, and trims a trailing
// slash.
func normalizeGitURL(url string) string {
	u := strings.TrimSuffix(strings.TrimSuffix(url, "/"), ".git")

	if strings.HasPrefix(u, "git@") {
		rest := strings.TrimPrefix(u, "git@")
		if idx := strings.Index(rest, ":"); idx >= 0 {
			host := rest[:idx]
			path := rest[idx+1:]
			u = "https://" + host + "/" + path
		}
	}

	u = strings.ToLower(u)
	u = strings.TrimSuffix(u, "/")
	return u
}

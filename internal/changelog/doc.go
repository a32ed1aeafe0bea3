// Package changelog bumps Keep a Changelog formatted markdown files on
// release branches.
//
// This package implements:
//   - Parsing release headings ("## 1.2.3 - 2024-01-15", "## [Unreleased]")
//   - Opening a "TBD" section for the next version of a release branch
//   - Committing and signing the updated file on the checked out branch
//
// Bumping is idempotent: when a section for the next version already exists
// the file is left untouched and no commit is created.
package changelog

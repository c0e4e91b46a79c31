package actions

import (
	glerrors "gitless.dev/gl/internal/errors"
	"gitless.dev/gl/internal/output"
	"gitless.dev/gl/internal/runtime"
)

// ListTagsAction prints every tag with the commit it labels.
func ListTagsAction(ctx *runtime.Context) error {
	tags, err := ctx.Repo.ListTags()
	if err != nil {
		return err
	}
	if len(tags) == 0 {
		ctx.Splog.Info("No tags")
		return nil
	}

	rows := make([]output.TagRow, 0, len(tags))
	for _, t := range tags {
		row := output.TagRow{Name: t.Name, Commit: t.Commit}
		commits, err := ctx.Repo.History(t.Commit, 1)
		if err != nil {
			return err
		}
		if len(commits) > 0 {
			row.Subject = commits[0].Subject
		}
		rows = append(rows, row)
	}
	output.PrintTags(ctx.Splog.Writer(), rows)
	return nil
}

// CreateTagOptions specifies options for creating tags
type CreateTagOptions struct {
	Names []string
	// CommitPoint is the commit the tags label (HEAD by default).
	CommitPoint string
}

// CreateTagAction creates lightweight tags.
func CreateTagAction(ctx *runtime.Context, opts CreateTagOptions) error {
	if len(opts.Names) == 0 {
		return glerrors.NewUserError("no tag name given")
	}
	at := opts.CommitPoint
	if at == "" {
		at = "HEAD"
	}

	var failed int
	for _, name := range opts.Names {
		t, err := ctx.Repo.CreateTag(name, at)
		if err != nil {
			ctx.Splog.Error("%v", err)
			failed++
			continue
		}
		ctx.Splog.Info("Created new tag %s at %s", t.Name, output.ColorRevision(t.Commit))
	}
	if failed > 0 {
		return glerrors.NewUserError("%d of %d tags could not be created", failed, len(opts.Names))
	}
	return nil
}

// DeleteTagAction deletes tags.
func DeleteTagAction(ctx *runtime.Context, names []string) error {
	if len(names) == 0 {
		return glerrors.NewUserError("no tag name given")
	}

	var failed int
	for _, name := range names {
		if err := ctx.Repo.DeleteTag(name); err != nil {
			ctx.Splog.Error("%v", err)
			failed++
			continue
		}
		ctx.Splog.Info("Tag %s removed", name)
	}
	if failed > 0 {
		return glerrors.NewUserError("%d of %d tags could not be deleted", failed, len(names))
	}
	return nil
}

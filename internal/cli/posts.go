package cli

import (
	"context"
	"fmt"
)

// clearValue in an edit prompt removes the current value.
const clearValue = "-"

func (a *App) Post(ctx context.Context) error {
	text, err := GetMultiline(a.reader, "What's on your mind?", a.out)
	if err != nil {
		return err
	}
	image, err := GetSimpleText(a.reader, "Image URL (optional)", a.out)
	if err != nil {
		return err
	}

	post, err := a.core.CreatePost(ctx, expandEmoji(text), image)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Posted %s\n", post.ID)
	return nil
}

// Edit pre-fills the prompts with the current post. An empty answer keeps
// the current value, "-" clears it.
func (a *App) Edit(ctx context.Context, id string) error {
	post, err := a.core.GetPost(id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Current text:\n%s\n", post.Text)
	text, err := GetMultiline(a.reader, "New text (empty keeps current, '-' clears)", a.out)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Current image: %s\n", post.ImageURL())
	image, err := GetSimpleText(a.reader, "New image URL (empty keeps current, '-' clears)", a.out)
	if err != nil {
		return err
	}

	text = expandEmoji(editValue(text, post.Text))
	if _, err := a.core.EditPost(ctx, id, text, editValue(image, post.ImageURL())); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Saved")
	return nil
}

func editValue(answer, current string) string {
	switch answer {
	case "":
		return current
	case clearValue:
		return ""
	default:
		return answer
	}
}

func (a *App) Delete(ctx context.Context, id string) error {
	if _, err := a.core.GetPost(id); err != nil {
		return err
	}

	ok, err := Confirm(a.reader, "Are you sure you want to delete this post?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		return errCancelled
	}

	if err := a.core.DeletePost(ctx, id); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Deleted")
	return nil
}

func (a *App) Like(ctx context.Context, id string) error {
	post, err := a.core.ToggleLike(ctx, id)
	if err != nil {
		return err
	}

	account, _ := a.core.CurrentUser()
	verb := "Unliked"
	if account != nil && post.IsLikedBy(account.ID) {
		verb = "Liked"
	}
	fmt.Fprintf(a.out, "%s (❤️ %d)\n", verb, post.Likes)
	return nil
}

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/photobooksgallery/pbg-manager/internal/entity"
	"github.com/photobooksgallery/pbg-manager/internal/form"
	"github.com/photobooksgallery/pbg-manager/internal/media"
	"github.com/spf13/cobra"
)

// editFlags are the field and media edits shared by create and edit commands.
type editFlags struct {
	sets        []string
	setLocales  []string
	images      []string
	videos      []string
	removeImage []int
	removeVideo []int
	draftFile   string
}

func (f *editFlags) register(cmd *cobra.Command, withMedia, withDraft bool) {
	cmd.Flags().StringArrayVar(&f.sets, "set", nil, "set a field, path=value (repeatable)")
	cmd.Flags().StringArrayVar(&f.setLocales, "set-locale", nil, "set a translation, path.locale=text (repeatable)")
	if withMedia {
		cmd.Flags().StringArrayVar(&f.images, "image", nil, "attach an image file (repeatable)")
		cmd.Flags().StringArrayVar(&f.videos, "video", nil, "attach a video file (repeatable)")
		cmd.Flags().IntSliceVar(&f.removeImage, "remove-image", nil, "remove the image at index")
		cmd.Flags().IntSliceVar(&f.removeVideo, "remove-video", nil, "remove the video at index")
	}
	if withDraft {
		cmd.Flags().StringVar(&f.draftFile, "draft", "", "seed the draft from a JSON document")
	}
}

func (f *editFlags) assignments() ([]form.Assignment, error) {
	out := make([]form.Assignment, 0, len(f.sets)+len(f.setLocales))
	for _, s := range f.sets {
		as, err := form.ParseAssignment(s, false)
		if err != nil {
			return nil, err
		}
		out = append(out, as)
	}
	for _, s := range f.setLocales {
		as, err := form.ParseAssignment(s, true)
		if err != nil {
			return nil, err
		}
		out = append(out, as)
	}
	return out, nil
}

// seed decodes --draft into d.
func (f *editFlags) seed(d any) error {
	if f.draftFile == "" {
		return nil
	}
	data, err := os.ReadFile(f.draftFile)
	if err != nil {
		return fmt.Errorf("can't read draft: %w", err)
	}
	if err := json.Unmarshal(data, d); err != nil {
		return fmt.Errorf("can't decode draft %s: %w", f.draftFile, err)
	}
	return nil
}

// apply runs field edits, media removals and attachments against the draft.
func (f *editFlags) apply(w io.Writer, d form.Draft, g *media.Gallery) error {
	as, err := f.assignments()
	if err != nil {
		return err
	}
	b := form.Bind(d)
	if err := b.Apply(as...); err != nil {
		return err
	}
	if g == nil {
		return nil
	}
	reseed(g, as)

	if removeAll(g.Images, f.removeImage) {
		if err := writeList(b, "images", g.Images.Uploaded()); err != nil {
			return err
		}
	}
	if removeAll(g.Videos, f.removeVideo) {
		if err := writeList(b, "videos", g.Videos.Uploaded()); err != nil {
			return err
		}
	}

	files := make([]entity.LocalFile, 0, len(f.images)+len(f.videos))
	for _, p := range append(append([]string(nil), f.images...), f.videos...) {
		lf, err := localFile(p)
		if err != nil {
			return err
		}
		files = append(files, lf)
	}
	for _, at := range g.Add(files...) {
		printPreview(w, at)
	}
	return nil
}

// reseed keeps the pipelines in step with lists set directly, so the
// submission does not fall back to the paths the draft was loaded with.
func reseed(g *media.Gallery, as []form.Assignment) {
	for _, a := range as {
		if a.Locale != "" {
			continue
		}
		switch a.Path {
		case "images":
			g.Images.Reseed(form.ParseList(a.Value))
		case "videos":
			g.Videos.Reseed(form.ParseList(a.Value))
		}
	}
}

// removeAll removes from the highest index down so earlier indexes stay put.
func removeAll(p *media.Pipeline, idx []int) bool {
	if len(idx) == 0 {
		return false
	}
	sorted := append([]int(nil), idx...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	removed := false
	for _, i := range sorted {
		if p.RemoveAt(i) {
			removed = true
		}
	}
	return removed
}

// writeList stores the remaining persisted paths so an emptied list is
// submitted as empty.
func writeList(b *form.Binding, field string, paths []string) error {
	err := b.OnFieldChange(field, strings.Join(paths, ","))
	if errors.Is(err, form.ErrUnknownField) {
		return nil
	}
	return err
}

// videoTypes covers extensions the platform mime table may lack.
var videoTypes = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/x-m4v",
	".mov":  "video/quicktime",
	".webm": "video/webm",
}

func localFile(path string) (entity.LocalFile, error) {
	st, err := os.Stat(path)
	if err != nil {
		return entity.LocalFile{}, fmt.Errorf("can't attach %s: %w", path, err)
	}
	if st.IsDir() {
		return entity.LocalFile{}, fmt.Errorf("can't attach %s: is a directory", path)
	}
	ext := strings.ToLower(filepath.Ext(path))
	ct, ok := videoTypes[ext]
	if !ok {
		ct = mime.TypeByExtension(ext)
	}
	if ct == "" {
		ct = "application/octet-stream"
	}
	return entity.LocalFile{
		Name:        filepath.Base(path),
		ContentType: ct,
		Size:        st.Size(),
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

func printPreview(w io.Writer, at media.Attachment) {
	if at.Preview.BlurHash != "" {
		fmt.Fprintf(w, "%s %s %dx%d %s\n", at.Kind, at.File.Name, at.Preview.Width, at.Preview.Height, at.Preview.BlurHash)
		return
	}
	fmt.Fprintf(w, "%s %s\n", at.Kind, at.File.Name)
}

// submit sends the draft through a dialog and prints the record id.
func submit(cmd *cobra.Command, d form.Draft, g *media.Gallery) error {
	res, err := a.Dialog(d, g).Submit(cmd.Context())
	if err != nil {
		return err
	}
	var rec struct {
		Id string `json:"id"`
	}
	if json.Unmarshal(res, &rec) == nil && rec.Id != "" {
		fmt.Fprintln(cmd.OutOrStdout(), rec.Id)
	}
	return nil
}

package aggregate

import (
	"reflect"
	"testing"

	"reviewlens/internal/aspect"
	"reviewlens/internal/labelcodec"
	"reviewlens/internal/labels"
	"reviewlens/internal/vocabulary"
)

func classifierSource(t *testing.T, id string, pairs map[aspect.ID][2]int) labels.LabelSource {
	t.Helper()
	vec := make([]int, aspect.Count)
	for a, p := range pairs {
		vec[a.Index()] = labelcodec.Encode(labelcodec.Sentiment(p[0]), labelcodec.ReasonCode(p[1]))
	}
	src, err := labels.NewClassifierDecoded(id, vec)
	if err != nil {
		t.Fatalf("NewClassifierDecoded: %v", err)
	}
	return src
}

func TestSummarizeEmptyInput(t *testing.T) {
	got := Summarize(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil table, got %#v", got)
	}
}

func TestSummarizeClassifierPath(t *testing.T) {
	pos, neg := int(labelcodec.Positive), int(labelcodec.Negative)
	sources := []labels.LabelSource{
		classifierSource(t, "1", map[aspect.ID][2]int{aspect.Cleanliness: {pos, int(labelcodec.Quality)}}),
		classifierSource(t, "2", map[aspect.ID][2]int{aspect.Cleanliness: {pos, int(labelcodec.Quality)}}),
		classifierSource(t, "3", map[aspect.ID][2]int{aspect.Staff: {neg, int(labelcodec.Service)}}),
	}
	got := Summarize(sources)
	if len(got) != 2 {
		t.Fatalf("expected two aspects, got %+v", got)
	}
	clean := got[0]
	if clean.Aspect != aspect.Cleanliness || clean.Positive != 2 || clean.Negative != 0 {
		t.Fatalf("unexpected cleanliness summary %+v", clean)
	}
	if !reflect.DeepEqual(clean.PositiveReasons, []string{"kalite"}) || len(clean.NegativeReasons) != 0 {
		t.Fatalf("unexpected cleanliness reasons %+v", clean)
	}
	staff := got[1]
	if staff.Aspect != aspect.Staff || staff.Negative != 1 || !reflect.DeepEqual(staff.NegativeReasons, []string{"servis"}) {
		t.Fatalf("unexpected staff summary %+v", staff)
	}
}

func TestSummarizeTieBreakFirstSeen(t *testing.T) {
	pos := int(labelcodec.Positive)
	sources := []labels.LabelSource{
		classifierSource(t, "1", map[aspect.ID][2]int{aspect.Location: {pos, int(labelcodec.Accessibility)}}),
		classifierSource(t, "2", map[aspect.ID][2]int{aspect.Location: {pos, int(labelcodec.Price)}}),
		classifierSource(t, "3", map[aspect.ID][2]int{aspect.Location: {pos, int(labelcodec.Quality)}}),
		classifierSource(t, "4", map[aspect.ID][2]int{aspect.Location: {pos, int(labelcodec.Quality)}}),
	}
	got := Summarize(sources)
	if len(got) != 1 {
		t.Fatalf("expected one aspect, got %+v", got)
	}
	want := []string{"kalite", "erisim"}
	if !reflect.DeepEqual(got[0].PositiveReasons, want) {
		t.Fatalf("positive reasons = %v, want %v", got[0].PositiveReasons, want)
	}
}

func TestSummarizeEqualCountsKeepFirstSeen(t *testing.T) {
	pos := int(labelcodec.Positive)
	price := map[aspect.ID][2]int{aspect.Location: {pos, int(labelcodec.Price)}}
	access := map[aspect.ID][2]int{aspect.Location: {pos, int(labelcodec.Accessibility)}}

	got := Summarize([]labels.LabelSource{
		classifierSource(t, "1", price),
		classifierSource(t, "2", access),
		classifierSource(t, "3", access),
		classifierSource(t, "4", price),
	})
	if len(got) != 1 || got[0].Positive != 4 {
		t.Fatalf("unexpected summary %+v", got)
	}
	if want := []string{"fiyat", "erisim"}; !reflect.DeepEqual(got[0].PositiveReasons, want) {
		t.Fatalf("positive reasons = %v, want %v", got[0].PositiveReasons, want)
	}

	swapped := Summarize([]labels.LabelSource{
		classifierSource(t, "1", access),
		classifierSource(t, "2", price),
		classifierSource(t, "3", price),
		classifierSource(t, "4", access),
	})
	if want := []string{"erisim", "fiyat"}; !reflect.DeepEqual(swapped[0].PositiveReasons, want) {
		t.Fatalf("swapped positive reasons = %v, want %v", swapped[0].PositiveReasons, want)
	}
}

func TestSummarizeNeutralCountsWithoutReasons(t *testing.T) {
	sources := []labels.LabelSource{
		classifierSource(t, "1", map[aspect.ID][2]int{aspect.WiFi: {int(labelcodec.Neutral), int(labelcodec.NeutralInformation)}}),
	}
	got := Summarize(sources)
	if len(got) != 1 || got[0].Neutral != 1 || len(got[0].PositiveReasons) != 0 || len(got[0].NegativeReasons) != 0 {
		t.Fatalf("unexpected neutral summary %+v", got)
	}
}

func TestSummarizeAnnotatorPathCountsEveryTag(t *testing.T) {
	sources := []labels.LabelSource{
		labels.NewAnnotatorDecoded("1", map[aspect.ID]vocabulary.Leaf{
			aspect.Pool: {Sentiment: labelcodec.Negative, Reasons: []string{"havuz_kalabalik", "havuz_soguk"}},
		}),
		labels.NewAnnotatorDecoded("2", map[aspect.ID]vocabulary.Leaf{
			aspect.Pool: {Sentiment: labelcodec.Negative, Reasons: []string{"havuz_soguk"}},
		}),
		labels.NewAnnotatorDecoded("3", nil),
	}
	got := Summarize(sources)
	if len(got) != 1 || got[0].Negative != 2 {
		t.Fatalf("unexpected summary %+v", got)
	}
	want := []string{"havuz_soguk", "havuz_kalabalik"}
	if !reflect.DeepEqual(got[0].NegativeReasons, want) {
		t.Fatalf("negative reasons = %v, want %v", got[0].NegativeReasons, want)
	}
}

func TestSummarizeMixedOrigins(t *testing.T) {
	pos := int(labelcodec.Positive)
	sources := []labels.LabelSource{
		classifierSource(t, "1", map[aspect.ID][2]int{aspect.Staff: {pos, int(labelcodec.Service)}}),
		labels.NewAnnotatorDecoded("2", map[aspect.ID]vocabulary.Leaf{
			aspect.Staff: {Sentiment: labelcodec.Positive, Reasons: []string{"guleryuzlu"}},
		}),
	}
	got := Summarize(sources)
	if len(got) != 1 || got[0].Positive != 2 {
		t.Fatalf("unexpected summary %+v", got)
	}
}

func TestTableKeysByWireKey(t *testing.T) {
	pos := int(labelcodec.Positive)
	sources := []labels.LabelSource{
		classifierSource(t, "1", map[aspect.ID][2]int{aspect.Cleanliness: {pos, int(labelcodec.Quality)}}),
	}
	table := Table(Summarize(sources))
	entry, ok := table["temizlik"]
	if !ok || len(table) != 1 {
		t.Fatalf("unexpected table %+v", table)
	}
	if entry.Positive != 1 || !reflect.DeepEqual(entry.PositiveReasons, []string{"kalite"}) {
		t.Fatalf("unexpected entry %+v", entry)
	}
}

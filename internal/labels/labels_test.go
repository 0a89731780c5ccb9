package labels

import (
	"reflect"
	"testing"

	"reviewlens/internal/aspect"
	"reviewlens/internal/labelcodec"
	"reviewlens/internal/vocabulary"
)

func TestClassifierDecodedMentions(t *testing.T) {
	vec := make([]int, aspect.Count)
	vec[aspect.Cleanliness.Index()] = labelcodec.Encode(labelcodec.Positive, labelcodec.Quality)
	src, err := NewClassifierDecoded("r1", vec)
	if err != nil {
		t.Fatalf("NewClassifierDecoded: %v", err)
	}
	m, ok := src.Mention(aspect.Cleanliness)
	if !ok || m.Sentiment != labelcodec.Positive || !reflect.DeepEqual(m.Reasons, []string{"kalite"}) {
		t.Fatalf("unexpected mention %+v %v", m, ok)
	}
	if _, ok := src.Mention(aspect.Staff); ok {
		t.Fatal("staff should not be mentioned")
	}
	if got := MentionedAspects(src); !reflect.DeepEqual(got, []aspect.ID{aspect.Cleanliness}) {
		t.Fatalf("unexpected mentioned aspects %v", got)
	}
	want := map[aspect.ID]labelcodec.Pair{
		aspect.Cleanliness: {Mentioned: true, Sentiment: labelcodec.Positive, Reason: labelcodec.Quality},
	}
	if got := src.Pairs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("pairs = %+v", got)
	}
	vec[0] = 99
	if src.ClassIDs[0] == 99 {
		t.Fatal("class ids must be copied")
	}
}

func TestClassifierDecodedRejectsBadVector(t *testing.T) {
	if _, err := NewClassifierDecoded("r1", []int{1, 2}); err == nil {
		t.Fatal("expected length error")
	}
}

func TestAnnotatorDecodedMentions(t *testing.T) {
	src := NewAnnotatorDecoded("r2", map[aspect.ID]vocabulary.Leaf{
		aspect.Staff: {Sentiment: labelcodec.Negative, Reasons: []string{"kaba", "ilgisiz"}},
	})
	if src.Origin() != OriginAnnotator {
		t.Fatalf("unexpected origin %s", src.Origin())
	}
	m, ok := src.Mention(aspect.Staff)
	if !ok || m.Sentiment != labelcodec.Negative || len(m.Reasons) != 2 {
		t.Fatalf("unexpected mention %+v", m)
	}
	empty := NewAnnotatorDecoded("r3", nil)
	if len(MentionedAspects(empty)) != 0 {
		t.Fatal("expected no mentions")
	}
}

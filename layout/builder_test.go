package layout

import (
	"math"
	"reflect"
	"testing"
)

func buildClassic(t *testing.T, fields Fields, mutate func(*Config)) *Result {
	t.Helper()
	cfg := Classic()
	if mutate != nil {
		mutate(&cfg)
	}
	res, err := Build(fields, cfg, BuildOptions{Measurer: stubMeasurer{}})
	if err != nil {
		t.Fatalf("布局计算失败: %v", err)
	}
	return res
}

func mustBlock(t *testing.T, res *Result, role Role) PlacedBlock {
	t.Helper()
	b, ok := res.Block(role)
	if !ok {
		t.Fatalf("missing block %s", role)
	}
	return b
}

func TestBuildHeadlineOnly(t *testing.T) {
	res := buildClassic(t, Fields{Headline: "HELLO WORLD"}, nil)

	if res.Compressed {
		t.Fatalf("short card must not be compressed")
	}
	if res.Total != 499 {
		t.Fatalf("expected total 499, got %d", res.Total)
	}
	if res.Spacing != 15 {
		t.Fatalf("expected normal spacing 15, got %d", res.Spacing)
	}
	head := mustBlock(t, res, RoleHeadline)
	if head.Y != 40 || head.Height != 62 || len(head.Lines) != 1 {
		t.Fatalf("unexpected headline block %+v", head)
	}
	if head.Align != AlignRight {
		t.Fatalf("headline should be right aligned")
	}
	// 品牌标记即使为空也占一行
	brand := mustBlock(t, res, RoleBrand)
	if brand.Y != 147 || brand.Height != 217 {
		t.Fatalf("unexpected brand block y=%d h=%d", brand.Y, brand.Height)
	}
	q := mustBlock(t, res, RoleQuestion)
	if q.Y != 409 || res.Anchored {
		t.Fatalf("question should follow the flow at 409, got %d (anchored=%t)", q.Y, res.Anchored)
	}
	want := []int{112, 127, 142, 374, 389, 404}
	if !reflect.DeepEqual(res.Separators, want) {
		t.Fatalf("separators = %v, want %v", res.Separators, want)
	}
	if !res.InBounds() || res.Overlaps() {
		t.Fatalf("expected an in-bounds, non-overlapping plan")
	}
}

func TestBuildEmptyFieldsHaveZeroHeight(t *testing.T) {
	res := buildClassic(t, Fields{Headline: "HELLO WORLD"}, nil)
	for _, role := range []Role{RoleSubhead, RoleBody, RoleAnnotation, RoleCaption1, RoleCaption2, RoleQuestion} {
		b := mustBlock(t, res, role)
		if b.Height != 0 || len(b.Lines) != 0 {
			t.Fatalf("%s: expected empty block, got %d lines height %d", role, len(b.Lines), b.Height)
		}
	}
}

func TestBuildAnnotationSharesBrandOrigin(t *testing.T) {
	res := buildClassic(t, Fields{Headline: "HELLO WORLD", Brand: "ACME", Annotation: "daily briefing for busy readers"}, nil)
	brand := mustBlock(t, res, RoleBrand)
	ann := mustBlock(t, res, RoleAnnotation)
	if ann.Y != brand.Y {
		t.Fatalf("annotation y %d != brand y %d", ann.Y, brand.Y)
	}
	if want := float64(res.Width-2*res.Padding) / 3; math.Abs(ann.MaxWidth-want) > 1e-9 {
		t.Fatalf("annotation width %.2f should be a third of the usable width", ann.MaxWidth)
	}
	// annotation 不计入总高度
	if res.Total != 499 {
		t.Fatalf("annotation must not change total, got %d", res.Total)
	}
}

func TestBuildCompressesWhenTooTall(t *testing.T) {
	res := buildClassic(t, Fields{Headline: "HELLO WORLD"}, func(c *Config) { c.Height = 498 })
	if !res.Compressed {
		t.Fatalf("expected compression when total exceeds height")
	}
	if res.Spacing != 9 {
		t.Fatalf("expected compressed spacing 9, got %d", res.Spacing)
	}
	if res.Total != 463 {
		t.Fatalf("expected compressed total 463, got %d", res.Total)
	}
	if res.Anchored {
		t.Fatalf("compressed plan fits, question must not be anchored")
	}
}

func TestBuildDoesNotCompressAtExactFit(t *testing.T) {
	res := buildClassic(t, Fields{Headline: "HELLO WORLD"}, func(c *Config) { c.Height = 499 })
	if res.Compressed {
		t.Fatalf("total equal to height must keep normal spacing")
	}
}

func TestBuildAnchorsQuestionAboveLogo(t *testing.T) {
	res := buildClassic(t, Fields{Headline: "HELLO WORLD", Question: "WHY"}, func(c *Config) { c.Height = 500 })
	if !res.Compressed || !res.Anchored {
		t.Fatalf("expected compressed and anchored plan, got compressed=%t anchored=%t", res.Compressed, res.Anchored)
	}
	q := mustBlock(t, res, RoleQuestion)
	if bottom := res.Height - res.Logo.Reserved; q.Bottom() != bottom {
		t.Fatalf("question bottom %d, want %d", q.Bottom(), bottom)
	}
	if q.Y != 348 {
		t.Fatalf("question y %d, want 348", q.Y)
	}
	if !res.Overlaps() {
		t.Fatalf("anchored question above the flow should be reported as overlap")
	}
}

func TestBuildMaxLengthClassic(t *testing.T) {
	cfg := Classic()
	res := buildClassic(t, maxFields(cfg), nil)
	if !res.Compressed {
		t.Fatalf("max-length card should use compressed spacing")
	}
	if !res.InBounds() {
		t.Fatalf("every block must stay inside the canvas")
	}
	q := mustBlock(t, res, RoleQuestion)
	if !res.Anchored || q.Y != 866 {
		t.Fatalf("question should be anchored at 866, got y=%d anchored=%t", q.Y, res.Anchored)
	}
	cap2 := mustBlock(t, res, RoleCaption2)
	if cap2.Bottom() > res.Height {
		t.Fatalf("caption2 bottom %d outside canvas", cap2.Bottom())
	}
}

func TestBuildKeepsRoleOrder(t *testing.T) {
	res := buildClassic(t, Fields{Headline: "A"}, nil)
	want := []Role{RoleHeadline, RoleSubhead, RoleBody, RoleBrand, RoleAnnotation, RoleCaption1, RoleCaption2, RoleQuestion}
	if len(res.Blocks) != len(want) {
		t.Fatalf("expected %d blocks, got %d", len(want), len(res.Blocks))
	}
	for i, b := range res.Blocks {
		if b.Role != want[i] {
			t.Fatalf("block %d is %s, want %s", i, b.Role, want[i])
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	cfg := Classic()
	fields := maxFields(cfg)
	first := buildClassic(t, fields, nil)
	second := buildClassic(t, fields, nil)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical input produced different plans")
	}
}

func TestBuildErrors(t *testing.T) {
	if _, err := Build(Fields{}, Classic(), BuildOptions{}); err == nil {
		t.Fatalf("expected error without measurer")
	}
	bad := Classic()
	bad.Padding = 600
	if _, err := Build(Fields{}, bad, BuildOptions{Measurer: stubMeasurer{}}); err == nil {
		t.Fatalf("expected validation error")
	}
	m := stubMeasurer{fail: map[string]bool{DefaultFace: true}}
	if _, err := Build(Fields{}, Classic(), BuildOptions{Measurer: m}); err == nil {
		t.Fatalf("expected measurer error to propagate")
	}
}

func TestPresetsBuildInBounds(t *testing.T) {
	for _, cfg := range Presets() {
		res, err := Build(maxFields(cfg), cfg, BuildOptions{Measurer: stubMeasurer{}})
		if err != nil {
			t.Fatalf("%s: %v", cfg.Name, err)
		}
		if !res.InBounds() {
			t.Fatalf("%s: max-length plan leaves the canvas", cfg.Name)
		}
	}
}

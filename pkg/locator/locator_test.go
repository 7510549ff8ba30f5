package locator

import (
	"testing"

	"github.com/atlanticwaters/podfill/models"
	"github.com/atlanticwaters/podfill/pkg/scene"
)

func TestFindChildByName(t *testing.T) {
	wanted := scene.NewText("Main Price", "$10")
	root := scene.NewFrame("Root",
		scene.NewFrame("Header",
			scene.NewText("Title", "hello"),
		),
		scene.NewFrame("Body",
			wanted,
			scene.NewText("Main Price", "$20"),
		),
	)

	got := FindChildByName(root, "Main Price")
	if got != models.SceneNode(wanted) {
		t.Fatalf("FindChildByName returned %v, want first match in document order", got)
	}
	if FindChildByName(root, "No Such Layer") != nil {
		t.Error("FindChildByName for absent name should return nil")
	}
	if FindChildByName(nil, "Main Price") != nil {
		t.Error("FindChildByName on nil root should return nil")
	}
}

func TestFindChildByName_PreOrder(t *testing.T) {
	// a shallow match later in the tree must lose to a deeper match
	// reached earlier in pre-order
	deep := scene.NewText("Label", "deep")
	root := scene.NewFrame("Root",
		scene.NewFrame("First", scene.NewFrame("Inner", deep)),
		scene.NewText("Label", "shallow"),
	)

	got := FindChildByName(root, "Label")
	text, ok := got.(models.TextNode)
	if !ok || text.Characters() != "deep" {
		t.Errorf("FindChildByName = %v, want the pre-order-first deep match", got)
	}
}

func TestFindTextDescendants(t *testing.T) {
	root := scene.NewFrame("Root",
		scene.NewFrame("Product Labels",
			scene.NewText("Brand", "ACME"),
			scene.NewFrame("Wrap",
				scene.NewText("Title", "Widget"),
			),
			scene.NewRect("Divider"),
			scene.NewText("Model", "Model# 7"),
		),
	)

	texts := FindTextDescendants(root, "Product Labels")
	if len(texts) != 3 {
		t.Fatalf("got %d text descendants, want 3", len(texts))
	}
	want := []string{"ACME", "Widget", "Model# 7"}
	for i, w := range want {
		if texts[i].Characters() != w {
			t.Errorf("text %d = %q, want %q", i, texts[i].Characters(), w)
		}
	}

	if got := FindTextDescendants(root, "Missing"); len(got) != 0 {
		t.Errorf("absent container should yield no texts, got %d", len(got))
	}
}

func TestFindAllNamedChildren(t *testing.T) {
	root := scene.NewFrame("Root",
		scene.NewFrame("Badge Group",
			scene.NewFrame("Badge"),
			scene.NewFrame("Spacer"),
			scene.NewFrame("Badge"),
			scene.NewFrame("Badge",
				// nested badge is NOT a direct child of the group
				scene.NewFrame("Badge"),
			),
		),
	)

	badges := FindAllNamedChildren(root, "Badge Group", "Badge")
	if len(badges) != 3 {
		t.Errorf("got %d direct badge children, want 3", len(badges))
	}
}

func TestFindFillableDescendant(t *testing.T) {
	inner := scene.NewRect("Image")
	root := scene.NewFrame("Pod",
		scene.NewFrame("Product Media",
			scene.NewFrame("Image", inner),
		),
	)

	got := FindFillableDescendant(root, "Product Media", "Image", "Image")
	if got != models.FillableNode(inner) {
		t.Errorf("want the innermost fillable on the path, got %v", got)
	}
}

func TestFindFillableDescendant_FallsBackToOuter(t *testing.T) {
	mediaImage := scene.NewFrame("Image")
	root := scene.NewFrame("Pod",
		scene.NewFrame("Product Media", mediaImage),
	)

	// the final path segment is missing, so the outer fill-capable
	// frame carries the image instead
	got := FindFillableDescendant(root, "Product Media", "Image", "Image")
	if got != models.FillableNode(mediaImage) {
		t.Errorf("want fallback to outer frame, got %v", got)
	}
}

func TestFindFillableDescendant_FirstSegmentNeverFills(t *testing.T) {
	// the media frame is fill-capable, but a pod with no image
	// container must resolve to nothing rather than the frame itself
	root := scene.NewFrame("Pod",
		scene.NewFrame("Product Media",
			scene.NewText("Caption", "x"),
		),
	)

	if got := FindFillableDescendant(root, "Product Media", "Image", "Image"); got != nil {
		t.Errorf("want nil when only the enclosing frame resolves, got %v", got)
	}
}

func TestFindFillableDescendant_NothingOnPath(t *testing.T) {
	root := scene.NewFrame("Pod", scene.NewFrame("Other"))
	if got := FindFillableDescendant(root, "Product Media", "Image"); got != nil {
		t.Errorf("want nil when no path segment resolves, got %v", got)
	}
}

func TestIsTargetInstance(t *testing.T) {
	pod := scene.NewInstance("Pod 1", "Product Pod / Default")
	if _, ok := IsTargetInstance(pod, "Product Pod"); !ok {
		t.Error("component name containing the label should match")
	}
	other := scene.NewInstance("Card", "Hero Card")
	if _, ok := IsTargetInstance(other, "Product Pod"); ok {
		t.Error("unrelated component should not match")
	}
	if _, ok := IsTargetInstance(scene.NewFrame("Product Pod"), "Product Pod"); ok {
		t.Error("a plain frame is never a target, whatever its name")
	}
}

func TestCollectTargets(t *testing.T) {
	nested := scene.NewInstance("Pod B", "Product Pod")
	direct := scene.NewInstance("Pod A", "Product Pod")
	inner := scene.NewInstance("Inner Pod", "Product Pod")
	// a pod inside a recognized pod must not be collected twice
	direct.Append(inner)

	selection := []models.SceneNode{
		direct,
		scene.NewFrame("Section",
			scene.NewFrame("Row", nested),
			scene.NewText("Caption", "x"),
		),
	}

	pods := CollectTargets(selection, "Product Pod")
	if len(pods) != 2 {
		t.Fatalf("got %d pods, want 2", len(pods))
	}
	if pods[0].(*scene.Instance) != direct || pods[1].(*scene.Instance) != nested {
		t.Errorf("pods resolved out of order: %v", pods)
	}
}

func TestCollectTargets_Empty(t *testing.T) {
	selection := []models.SceneNode{scene.NewFrame("Empty")}
	if pods := CollectTargets(selection, "Product Pod"); len(pods) != 0 {
		t.Errorf("got %d pods from an empty selection, want 0", len(pods))
	}
}

package core

import (
	"errors"
	"testing"

	"github.com/smartystreets/assertions/should"
	"github.com/smartystreets/gunit"

	"github.com/forgesdk/quarry/contracts"
)

func TestIndexMutatorFixture(t *testing.T) {
	gunit.Run(new(IndexMutatorFixture), t)
}

type IndexMutatorFixture struct {
	*gunit.Fixture

	mutator *IndexMutator
	payload map[string]any
}

func (this *IndexMutatorFixture) Setup() {
	this.mutator = NewIndexMutator()
	this.payload = map[string]any{
		"artifacts": platformMap("rp2040", "https://cdn/new", ""),
	}
}

func mapShapeIndex(releases any) map[string]any {
	return map[string]any{
		"packages": map[string]any{
			"FastLED": map[string]any{"releases": releases},
		},
	}
}

func (this *IndexMutatorFixture) TestAppendToArrayShape() {
	index := arrayShapeIndex("FastLED", release("1.0.0", nil))

	updated, err := this.mutator.ApplyRelease(index, "FastLED", "1.1.0", this.payload)

	this.So(err, should.BeNil)
	node := updated["packages"].([]any)[0].(map[string]any)
	releases := node["releases"].([]any)
	this.So(releases, should.HaveLength, 2)
	this.So(releases[1].(map[string]any)["version"], should.Equal, "1.1.0")
}

func (this *IndexMutatorFixture) TestInputDocumentNeverMutated() {
	index := arrayShapeIndex("FastLED", release("1.0.0", nil))
	snapshot := deepCopyObject(index)

	_, err := this.mutator.ApplyRelease(index, "FastLED", "1.1.0", this.payload)

	this.So(err, should.BeNil)
	this.So(index, should.Resemble, snapshot)
}

func (this *IndexMutatorFixture) TestConflictInArrayShape() {
	index := arrayShapeIndex("FastLED", release("1.0.0", nil))

	_, err := this.mutator.ApplyRelease(index, "FastLED", "1.0.0", this.payload)

	var conflict *contracts.ConflictError
	this.So(errors.As(err, &conflict), should.BeTrue)
}

func (this *IndexMutatorFixture) TestConflictInMapShapeWithReleaseArray() {
	index := mapShapeIndex([]any{release("1.0.0", nil)})

	_, err := this.mutator.ApplyRelease(index, "FastLED", "1.0.0", this.payload)

	var conflict *contracts.ConflictError
	this.So(errors.As(err, &conflict), should.BeTrue)
}

func (this *IndexMutatorFixture) TestConflictInMapShapeWithReleaseMap() {
	index := mapShapeIndex(map[string]any{"1.0.0": map[string]any{}})

	_, err := this.mutator.ApplyRelease(index, "FastLED", "1.0.0", this.payload)

	var conflict *contracts.ConflictError
	this.So(errors.As(err, &conflict), should.BeTrue)
}

func (this *IndexMutatorFixture) TestConflictDetectedAcrossVersionPrefixes() {
	index := arrayShapeIndex("FastLED", release("v1.0.0", nil))

	_, err := this.mutator.ApplyRelease(index, "FastLED", "1.0.0", this.payload)

	var conflict *contracts.ConflictError
	this.So(errors.As(err, &conflict), should.BeTrue)
}

func (this *IndexMutatorFixture) TestSecondApplyOfSameVersionAlwaysConflicts() {
	index := mapShapeIndex(map[string]any{})

	updated, err := this.mutator.ApplyRelease(index, "FastLED", "1.1.0", this.payload)
	this.So(err, should.BeNil)

	_, err = this.mutator.ApplyRelease(updated, "FastLED", "1.1.0", this.payload)
	var conflict *contracts.ConflictError
	this.So(errors.As(err, &conflict), should.BeTrue)
}

func (this *IndexMutatorFixture) TestMapShapePreservedOnWrite() {
	index := mapShapeIndex(map[string]any{"1.0.0": map[string]any{}})

	updated, err := this.mutator.ApplyRelease(index, "FastLED", "1.1.0", this.payload)

	this.So(err, should.BeNil)
	packages, ok := updated["packages"].(map[string]any)
	this.So(ok, should.BeTrue)
	releases := packages["FastLED"].(map[string]any)["releases"].(map[string]any)
	this.So(releases, should.ContainKey, "1.0.0")
	this.So(releases, should.ContainKey, "1.1.0")
}

func (this *IndexMutatorFixture) TestCaseInsensitiveMatchReusesStoredNode() {
	index := arrayShapeIndex("FastLED", release("1.0.0", nil))

	updated, err := this.mutator.ApplyRelease(index, "fastled", "1.1.0", this.payload)

	this.So(err, should.BeNil)
	packages := updated["packages"].([]any)
	this.So(packages, should.HaveLength, 1)
	node := packages[0].(map[string]any)
	this.So(node["name"], should.Equal, "FastLED")
	this.So(node["releases"].([]any), should.HaveLength, 2)
}

func (this *IndexMutatorFixture) TestNewPackageCreatedInArrayShape() {
	index := arrayShapeIndex("FastLED", release("1.0.0", nil))

	updated, err := this.mutator.ApplyRelease(index, "Servo", "0.1.0", this.payload)

	this.So(err, should.BeNil)
	packages := updated["packages"].([]any)
	this.So(packages, should.HaveLength, 2)
	created := packages[1].(map[string]any)
	this.So(created["name"], should.Equal, "Servo")
	this.So(created["releases"].([]any), should.HaveLength, 1)
}

func (this *IndexMutatorFixture) TestNewPackageCreatedInMapShape() {
	index := mapShapeIndex(map[string]any{})

	updated, err := this.mutator.ApplyRelease(index, "Servo", "0.1.0", this.payload)

	this.So(err, should.BeNil)
	packages := updated["packages"].(map[string]any)
	this.So(packages, should.ContainKey, "Servo")
}

func (this *IndexMutatorFixture) TestForeignReleasesFormatRejected() {
	index := mapShapeIndex("not-a-collection")

	_, err := this.mutator.ApplyRelease(index, "FastLED", "1.0.0", this.payload)

	var format *contracts.FormatError
	this.So(errors.As(err, &format), should.BeTrue)
}

func (this *IndexMutatorFixture) TestUnrecognizedDocumentRejected() {
	_, err := this.mutator.ApplyRelease(map[string]any{}, "FastLED", "1.0.0", this.payload)

	var format *contracts.FormatError
	this.So(errors.As(err, &format), should.BeTrue)
}

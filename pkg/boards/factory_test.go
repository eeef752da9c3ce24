package boards

import (
	"errors"
	"testing"

	"github.com/dfb/gmtools/pkg/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFactory(t *testing.T) {
	Convey("Given a factory", t, func() {
		f := NewFactory(seqIDs())

		Convey("a fresh board", func() {
			b, err := f.Build("Plains", 3, 2, nil)
			So(err, ShouldBeNil)

			Convey("gets a new id and the requested shape", func() {
				So(b.ID, ShouldEqual, "1")
				So(b.Name, ShouldEqual, "Plains")
				So(b.Validate(), ShouldBeNil)
				So(len(b.Tiles), ShouldEqual, 3)
				So(len(b.Tiles[0]), ShouldEqual, 2)
			})

			Convey("is filled with default tiles", func() {
				for x := range b.Tiles {
					for y := range b.Tiles[x] {
						So(b.Tiles[x][y], ShouldResemble, types.DefaultTile())
					}
				}
			})

			Convey("does not share unit slices between tiles", func() {
				b.Tiles[0][0].Units = append(b.Tiles[0][0].Units, types.UnitInstance{ID: 100, Unit: "Archer"})
				So(b.Tiles[0][1].Units, ShouldBeEmpty)
			})

			Convey("the next build gets a different id", func() {
				other, err := f.Build("Other", 1, 1, nil)
				So(err, ShouldBeNil)
				So(other.ID, ShouldNotEqual, b.ID)
			})
		})

		Convey("non-positive dimensions are rejected", func() {
			for _, dims := range [][2]int{{0, 1}, {1, 0}, {-2, 3}, {0, 0}} {
				_, err := f.Build("bad", dims[0], dims[1], nil)
				So(errors.Is(err, types.ErrInvalidDimensions), ShouldBeTrue)
			}
		})

		Convey("with a reference board", func() {
			ref, err := f.Build("Ref", 3, 3, nil)
			So(err, ShouldBeNil)
			paint(ref)
			ref.Tiles[2][2].Units[0].Conditions = []string{"stunned"}
			ref.Tiles[1][1].Selected = true

			Convey("growing keeps every tile and pads with defaults", func() {
				b, err := f.Build(ref.Name, 5, 4, ref)
				So(err, ShouldBeNil)
				So(b.ID, ShouldEqual, ref.ID)
				So(b.Validate(), ShouldBeNil)
				for x := 0; x < 5; x++ {
					for y := 0; y < 4; y++ {
						if x < 3 && y < 3 {
							So(b.Tiles[x][y].Type, ShouldEqual, ref.Tiles[x][y].Type)
							So(b.Tiles[x][y].Units, ShouldResemble, ref.Tiles[x][y].Units)
						} else {
							So(b.Tiles[x][y], ShouldResemble, types.DefaultTile())
						}
					}
				}
			})

			Convey("shrinking drops tiles outside the new bounds", func() {
				b, err := f.Build(ref.Name, 2, 1, ref)
				So(err, ShouldBeNil)
				So(b.W, ShouldEqual, 2)
				So(b.H, ShouldEqual, 1)
				So(b.Tiles[1][0].Type, ShouldEqual, ref.Tiles[1][0].Type)
				So(b.Tiles[1][0].Light, ShouldEqual, ref.Tiles[1][0].Light)
			})

			Convey("the same size is a copy", func() {
				b, err := f.Build(ref.Name, 3, 3, ref)
				So(err, ShouldBeNil)
				So(b.Tiles[0][2].Movement, ShouldEqual, ref.Tiles[0][2].Movement)
				So(b.Tiles[1][1].Selected, ShouldBeFalse)
			})

			Convey("the result shares no units with the reference", func() {
				b, err := f.Build(ref.Name, 3, 3, ref)
				So(err, ShouldBeNil)
				b.Tiles[2][2].Units[0].Health = 0
				b.Tiles[2][2].Units[0].Conditions[0] = "dead"
				b.Tiles[0][0].Units = append(b.Tiles[0][0].Units, types.UnitInstance{ID: 999})

				So(ref.Tiles[2][2].Units[0].Health, ShouldEqual, 5)
				So(ref.Tiles[2][2].Units[0].Conditions, ShouldResemble, []string{"stunned"})
				So(len(ref.Tiles[0][0].Units), ShouldEqual, 1)
			})

			Convey("no new id is drawn", func() {
				_, err := f.Build(ref.Name, 4, 4, ref)
				So(err, ShouldBeNil)
				next, err := f.Build("fresh", 1, 1, nil)
				So(err, ShouldBeNil)
				So(next.ID, ShouldEqual, "2")
			})

			Convey("a malformed reference is rejected", func() {
				ref.Tiles = ref.Tiles[:2]
				_, err := f.Build(ref.Name, 4, 4, ref)
				So(errors.Is(err, types.ErrMalformedBoard), ShouldBeTrue)
			})
		})
	})
}

/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package store_test

import (
	"errors"
	"strconv"
	"sync"

	"github.com/botobag/rendezvous/model"
	"github.com/botobag/rendezvous/store"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func locationNamed(id string, name string) model.Location {
	return model.Location{
		ID:   id,
		Name: &name,
	}
}

var _ = Describe("Collection", func() {
	var locations *store.Collection[model.Location]

	BeforeEach(func() {
		locations = store.NewCollection[model.Location](store.KindLocation)
		locations.Insert(locationNamed("1", "Dock"))
		locations.Insert(locationNamed("2", "Hall"))
		locations.Insert(locationNamed("3", "Roof"))
	})

	It("lists records in insertion order", func() {
		ids := []string{}
		for _, l := range locations.List() {
			ids = append(ids, l.ID)
		}
		Expect(ids).Should(Equal([]string{"1", "2", "3"}))
	})

	It("returns a non-nil list when empty", func() {
		empty := store.NewCollection[model.User](store.KindUser)
		Expect(empty.List()).ShouldNot(BeNil())
		Expect(empty.List()).Should(BeEmpty())
		Expect(empty.Filter(func(model.User) bool { return true })).ShouldNot(BeNil())
	})

	It("returns copies", func() {
		list := locations.List()
		list[0].ID = "changed"
		Expect(locations.List()[0].ID).Should(Equal("1"))
	})

	It("finds a record by id", func() {
		l, err := locations.Find("2")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(*l.Name).Should(Equal("Hall"))
	})

	It("reports a missing id with the kind", func() {
		_, err := locations.Find("42")
		Expect(errors.Is(err, store.ErrNotFound)).Should(BeTrue())

		var notFound *store.NotFoundError
		Expect(errors.As(err, &notFound)).Should(BeTrue())
		Expect(notFound.Kind).Should(Equal(store.KindLocation))
		Expect(notFound.ID).Should(Equal("42"))
	})

	It("updates in place and keeps the id", func() {
		name := "Attic"
		patch := model.LocationPatch{
			Name: model.Some(name),
			Lat:  model.Some(1.5),
		}
		updated, err := locations.Update("3", patch.Apply)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(updated.ID).Should(Equal("3"))
		Expect(*updated.Name).Should(Equal("Attic"))
		Expect(*updated.Lat).Should(Equal(1.5))

		l, err := locations.Find("3")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(l).Should(Equal(updated))
	})

	It("fails to update a missing id without changing anything", func() {
		before := locations.List()
		_, err := locations.Update("9", func(*model.Location) {})
		Expect(err).Should(MatchError(store.ErrNotFound))
		Expect(locations.List()).Should(Equal(before))
	})

	It("removes the first matching record and keeps the order of the rest", func() {
		removed, err := locations.Remove("2")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(*removed.Name).Should(Equal("Hall"))
		Expect(locations.Len()).Should(Equal(2))
		Expect(locations.List()[0].ID).Should(Equal("1"))
		Expect(locations.List()[1].ID).Should(Equal("3"))

		_, err = locations.Find("2")
		Expect(err).Should(MatchError(store.ErrNotFound))
	})

	It("fails to remove a missing id", func() {
		_, err := locations.Remove("9")
		Expect(err).Should(MatchError(store.ErrNotFound))
		Expect(locations.Len()).Should(Equal(3))
	})

	It("clears all records and returns the prior count", func() {
		Expect(locations.Clear()).Should(Equal(3))
		Expect(locations.Len()).Should(Equal(0))
		Expect(locations.Clear()).Should(Equal(0))
	})

	It("filters records", func() {
		result := locations.Filter(func(l model.Location) bool {
			return *l.Name != "Hall"
		})
		Expect(result).Should(HaveLen(2))
	})

	It("serializes concurrent writers", func() {
		users := store.NewCollection[model.User](store.KindUser)

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				users.Insert(model.User{ID: strconv.Itoa(i)})
			}(i)
		}
		wg.Wait()

		Expect(users.Len()).Should(Equal(50))
		Expect(users.Clear()).Should(Equal(50))
	})
})

var _ = Describe("Store", func() {
	It("keeps kinds separate", func() {
		s := store.New()
		s.Users.Insert(model.User{ID: "1"})
		s.Locations.Insert(model.Location{ID: "1"})

		Expect(s.Locations.Clear()).Should(Equal(1))
		Expect(s.Counts()).Should(Equal(map[store.Kind]int{
			store.KindUser:        1,
			store.KindEvent:       0,
			store.KindLocation:    0,
			store.KindParticipant: 0,
		}))
	})
})

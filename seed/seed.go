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

// Package seed loads initial records into a store from a TOML file.
//
// A seed file lists records per collection:
//
//	[[users]]
//	id = "1"
//	username = "al"
//	email = "al@example.com"
//
//	[[events]]
//	id = "2"
//	title = "Launch"
//	location_id = 3
//	user_id = "1"
//
// Foreign keys may be written as integers or strings.
package seed

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/botobag/rendezvous/model"
	"github.com/botobag/rendezvous/store"
	"github.com/pelletier/go-toml/v2"
)

// User is a user entry of a seed file.
type User struct {
	ID       string `toml:"id"`
	Username string `toml:"username"`
	Email    string `toml:"email"`
}

// Event is an event entry of a seed file.
type Event struct {
	ID         string      `toml:"id"`
	Title      *string     `toml:"title"`
	Desc       *string     `toml:"desc"`
	Date       *string     `toml:"date"`
	From       *string     `toml:"from"`
	To         *string     `toml:"to"`
	LocationID interface{} `toml:"location_id"`
	UserID     interface{} `toml:"user_id"`
}

// Location is a location entry of a seed file.
type Location struct {
	ID   string   `toml:"id"`
	Name *string  `toml:"name"`
	Desc *string  `toml:"desc"`
	Lat  *float64 `toml:"lat"`
	Lng  *float64 `toml:"lng"`
}

// Participant is a participant entry of a seed file.
type Participant struct {
	ID      string      `toml:"id"`
	UserID  interface{} `toml:"user_id"`
	EventID interface{} `toml:"event_id"`
}

// File is the content of a seed file.
type File struct {
	Users        []User        `toml:"users"`
	Events       []Event       `toml:"events"`
	Locations    []Location    `toml:"locations"`
	Participants []Participant `toml:"participants"`
}

// IDObserver is notified of every id loaded from a seed file. *idgen.Sequence implements it.
type IDObserver interface {
	Observe(id string)
}

// Decode reads a seed file from r. Unknown keys are rejected.
func Decode(r io.Reader) (*File, error) {
	var file File
	decoder := toml.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("seed: decode: %w", err)
	}
	return &file, nil
}

// ReadFile decodes the seed file at path.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	return Decode(bytes.NewReader(data))
}

// Records converts the entries of the file into records. It fails on an empty or duplicate id
// within a collection, or on a foreign key that is neither an integer nor a string.
func (file *File) Records() (*Records, error) {
	records := &Records{}
	seen := map[store.Kind]map[string]bool{}

	check := func(kind store.Kind, index int, id string) error {
		if id == "" {
			return fmt.Errorf("seed: %s #%d: missing id", kind, index+1)
		}
		if seen[kind] == nil {
			seen[kind] = map[string]bool{}
		}
		if seen[kind][id] {
			return fmt.Errorf("seed: %s #%d: duplicate id %q", kind, index+1, id)
		}
		seen[kind][id] = true
		return nil
	}

	for i, u := range file.Users {
		if err := check(store.KindUser, i, u.ID); err != nil {
			return nil, err
		}
		records.Users = append(records.Users, model.User{
			ID:       u.ID,
			Username: u.Username,
			Email:    u.Email,
		})
	}

	for i, e := range file.Events {
		if err := check(store.KindEvent, i, e.ID); err != nil {
			return nil, err
		}
		locationID, err := refOf(e.LocationID)
		if err != nil {
			return nil, fmt.Errorf("seed: %s #%d: location_id: %w", store.KindEvent, i+1, err)
		}
		userID, err := refOf(e.UserID)
		if err != nil {
			return nil, fmt.Errorf("seed: %s #%d: user_id: %w", store.KindEvent, i+1, err)
		}
		records.Events = append(records.Events, model.Event{
			ID:         e.ID,
			Title:      e.Title,
			Desc:       e.Desc,
			Date:       e.Date,
			From:       e.From,
			To:         e.To,
			LocationID: locationID,
			UserID:     userID,
		})
	}

	for i, l := range file.Locations {
		if err := check(store.KindLocation, i, l.ID); err != nil {
			return nil, err
		}
		records.Locations = append(records.Locations, model.Location{
			ID:   l.ID,
			Name: l.Name,
			Desc: l.Desc,
			Lat:  l.Lat,
			Lng:  l.Lng,
		})
	}

	for i, p := range file.Participants {
		if err := check(store.KindParticipant, i, p.ID); err != nil {
			return nil, err
		}
		userID, err := refOf(p.UserID)
		if err != nil {
			return nil, fmt.Errorf("seed: %s #%d: user_id: %w", store.KindParticipant, i+1, err)
		}
		eventID, err := refOf(p.EventID)
		if err != nil {
			return nil, fmt.Errorf("seed: %s #%d: event_id: %w", store.KindParticipant, i+1, err)
		}
		records.Participants = append(records.Participants, model.Participant{
			ID:      p.ID,
			UserID:  userID,
			EventID: eventID,
		})
	}

	return records, nil
}

// refOf converts a decoded foreign key. An absent key gives nil.
func refOf(value interface{}) (*model.Ref, error) {
	switch value := value.(type) {
	case nil:
		return nil, nil
	case int64:
		return model.RefOf(strconv.FormatInt(value, 10)), nil
	case string:
		return model.RefOf(value), nil
	}
	return nil, fmt.Errorf("expect an integer or a string, but got %T", value)
}

// Records holds the records of a seed file, ready to be inserted.
type Records struct {
	Users        []model.User
	Events       []model.Event
	Locations    []model.Location
	Participants []model.Participant
}

// Len returns the number of records.
func (records *Records) Len() int {
	return len(records.Users) + len(records.Events) + len(records.Locations) + len(records.Participants)
}

// Insert appends the records to s in file order and reports each id to observer, which may be nil.
func (records *Records) Insert(s *store.Store, observer IDObserver) {
	observe := func(id string) {
		if observer != nil {
			observer.Observe(id)
		}
	}

	for _, u := range records.Users {
		s.Users.Insert(u)
		observe(u.ID)
	}
	for _, e := range records.Events {
		s.Events.Insert(e)
		observe(e.ID)
	}
	for _, l := range records.Locations {
		s.Locations.Insert(l)
		observe(l.ID)
	}
	for _, p := range records.Participants {
		s.Participants.Insert(p)
		observe(p.ID)
	}
}

// Load reads the seed file at path and inserts its records into s. It returns the number of
// records inserted. Nothing is inserted if the file is invalid.
func Load(path string, s *store.Store, observer IDObserver) (int, error) {
	file, err := ReadFile(path)
	if err != nil {
		return 0, err
	}

	records, err := file.Records()
	if err != nil {
		return 0, err
	}

	records.Insert(s, observer)
	return records.Len(), nil
}

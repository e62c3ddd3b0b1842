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

package pubsub

// Topic names a notification channel.
type Topic string

// Enumeration of Topic
const (
	// TopicUserCreated carries every User created through the main schema.
	TopicUserCreated Topic = "userCreated"
	// TopicEventCreated carries every Event created through the main schema.
	TopicEventCreated Topic = "eventCreated"
	// TopicParticipantCreated carries every Participant created through the main schema.
	TopicParticipantCreated Topic = "participantCreated"
	// TopicUserAdded carries every User added through the demo schema.
	TopicUserAdded Topic = "userAdded"
)

// Topics lists all valid topics.
var Topics = []Topic{
	TopicUserCreated,
	TopicEventCreated,
	TopicParticipantCreated,
	TopicUserAdded,
}

// Valid returns true if t is one of the enumerated topics.
func (t Topic) Valid() bool {
	switch t {
	case TopicUserCreated, TopicEventCreated, TopicParticipantCreated, TopicUserAdded:
		return true
	}
	return false
}

// String returns the topic name.
func (t Topic) String() string {
	return string(t)
}

// Code generated by musgen-go. DO NOT EDIT.

package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

var (
	sliceQ4sGx8sV862LΔnHxoFvNyAΞΞ = ord.NewSliceSer[string](ord.String)
	slicesTdkEs3qkcffwX4aJmKM2gΞΞ = ord.NewSliceSer[float32](varint.Float32)
)

var TrackKindMUS = trackKindMUS{}

type trackKindMUS struct{}

func (s trackKindMUS) Marshal(v TrackKind, bs []byte) (n int) {
	return varint.Int.Marshal(int(v), bs)
}

func (s trackKindMUS) Unmarshal(bs []byte) (v TrackKind, n int, err error) {
	tmp, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	v = TrackKind(tmp)
	return
}

func (s trackKindMUS) Size(v TrackKind) (size int) {
	return varint.Int.Size(int(v))
}

func (s trackKindMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int.Skip(bs)
}

var IDMUS = iDMUS{}

type iDMUS struct{}

func (s iDMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s iDMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	tmp, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v = ID(tmp)
	return
}

func (s iDMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s iDMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

var TrackMUS = trackMUS{}

type trackMUS struct{}

func (s trackMUS) Marshal(v Track, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += TrackKindMUS.Marshal(v.Kind, bs[n:])
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Artist, bs[n:])
	n += sliceQ4sGx8sV862LΔnHxoFvNyAΞΞ.Marshal(v.Genres, bs[n:])
	n += sliceQ4sGx8sV862LΔnHxoFvNyAΞΞ.Marshal(v.Tags, bs[n:])
	n += varint.Int.Marshal(v.Tempo, bs[n:])
	n += varint.Uint64.Marshal(v.PlayCount, bs[n:])
	n += ord.String.Marshal(v.StreamURL, bs[n:])
	n += slicesTdkEs3qkcffwX4aJmKM2gΞΞ.Marshal(v.Vector, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.InsertedAt, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.UpdatedAt, bs[n:])
}

func (s trackMUS) Unmarshal(bs []byte) (v Track, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Kind, n1, err = TrackKindMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Artist, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Genres, n1, err = sliceQ4sGx8sV862LΔnHxoFvNyAΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Tags, n1, err = sliceQ4sGx8sV862LΔnHxoFvNyAΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Tempo, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.PlayCount, n1, err = varint.Uint64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.StreamURL, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Vector, n1, err = slicesTdkEs3qkcffwX4aJmKM2gΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s trackMUS) Size(v Track) (size int) {
	size = IDMUS.Size(v.Id)
	size += TrackKindMUS.Size(v.Kind)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Artist)
	size += sliceQ4sGx8sV862LΔnHxoFvNyAΞΞ.Size(v.Genres)
	size += sliceQ4sGx8sV862LΔnHxoFvNyAΞΞ.Size(v.Tags)
	size += varint.Int.Size(v.Tempo)
	size += varint.Uint64.Size(v.PlayCount)
	size += ord.String.Size(v.StreamURL)
	size += slicesTdkEs3qkcffwX4aJmKM2gΞΞ.Size(v.Vector)
	size += raw.TimeUnixMicro.Size(v.InsertedAt)
	return size + raw.TimeUnixMicro.Size(v.UpdatedAt)
}

func (s trackMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = TrackKindMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = sliceQ4sGx8sV862LΔnHxoFvNyAΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = sliceQ4sGx8sV862LΔnHxoFvNyAΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Uint64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slicesTdkEs3qkcffwX4aJmKM2gΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}

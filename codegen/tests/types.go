// Copyright (c) 2025 The jnisig Authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the jnisig library.

package tests

//jnisig:class android.content.Context
type Context interface {
	GetPackageName() string
	CheckPermission(permission string, pid int32, uid int32) (int32, error)
	//jnisig:name getSystemService
	SystemService(name string) (*Object, error)
	GetExternalFilesDirs(kind string) []*File
}

//jnisig:class android.hardware.Sensor
type Sensor interface {
	GetName() string
	GetPower() float32
	GetResolution() float64
	GetMinDelay() int32
	GetId() int
	IsWakeUpSensor() bool
	//jnisig:skip
	Close()
}

type Object struct{}

func (*Object) JavaClassName() string { return "java.lang.Object" }

type File struct{}

func (*File) JavaClassName() string { return "java.io.File" }

type Bitmap struct{}

func (*Bitmap) JavaClassName() string { return "android.graphics.Bitmap" }

//jnisig:class android.graphics.BitmapFactory
//jnisig:name decodeByteArray
//jnisig:static
type BitmapDecode struct {
	Data   []byte
	Offset int32
	Length int32
	Result *Bitmap `jni:",return"`
}

//jnisig:class android.media.AudioTrack
type AudioTrack struct{}

func (a *AudioTrack) Play() error                                  { return nil }
func (a *AudioTrack) Write(data []int16, offset, size int32) int32 { return 0 }
func (a *AudioTrack) SetVolume(gain float32) (int32, error)        { return 0, nil }
func (a *AudioTrack) JavaClassName() string                        { return "android.media.AudioTrack" }

package tests

//go:generate go run ../../jnisig-gen go --package . --types Context,Sensor,BitmapDecode:gen_bitmap.go,AudioTrack --output gen_jni.go

package grpc

import (
	pb "formsink/proto"
	"formsink/upload"
)

func settingsFromPb(p *pb.UploadSettings) upload.Settings {
	return upload.Settings{
		MemoryThreshold: p.MemoryThreshold,
		TempDir:         p.TempDir,
		MaxHeaderBytes:  int(p.MaxHeaderBytes),
		Handlers:        p.Handlers,
		Quota:           p.Quota,
		ScanSignatures:  p.ScanSignatures,
	}
}

func settingsToPb(s upload.Settings) *pb.UploadSettings {
	return &pb.UploadSettings{
		MemoryThreshold: s.MemoryThreshold,
		TempDir:         s.TempDir,
		MaxHeaderBytes:  int32(s.MaxHeaderBytes),
		Handlers:        s.Handlers,
		Quota:           s.Quota,
		ScanSignatures:  s.ScanSignatures,
	}
}

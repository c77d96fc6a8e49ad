package service

// DriveServiceInterface defines the contract for Google Drive image downloads
type DriveServiceInterface interface {
	DownloadImage(fileID string) ([]byte, error)
}

package builder

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kicadtools/pcmgen/internal/archive"
	"github.com/kicadtools/pcmgen/internal/metadata"
	"github.com/kicadtools/pcmgen/internal/models"
	"github.com/kicadtools/pcmgen/internal/signer"
	"github.com/kicadtools/pcmgen/internal/utils"
	"github.com/sirupsen/logrus"
)

// Fixed project layout, resolved against BuildConfig.RootDir
const (
	contentDirName  = "lib-content"
	distDirName     = "dist"
	releasesDirName = "releases"

	packagesIndexName   = "packages.json"
	resourcesName       = "resources.zip"
	repositoryName      = "repository.json"
	packageMetadataName = "metadata.json"
	publicKeyName       = "public-key.asc"
)

const updateTimeLayout = "2006-01-02 15:04:05"

// Builder runs the stage, archive, hash and emit pipeline
type Builder struct {
	signer signer.Signer
}

// New creates a Builder. The signer may be nil for unsigned output.
func New(s signer.Signer) *Builder {
	return &Builder{signer: s}
}

// Result describes the artifacts of a completed build
type Result struct {
	PackagePath   string
	RepositoryURL string
}

// Build packages the content directory and emits the index files. The
// output directory is recreated from scratch, so a rerun fully replaces
// prior output.
func (b *Builder) Build(ctx context.Context, cfg *models.BuildConfig) (*Result, error) {
	base, err := metadata.Load(filepath.Join(cfg.RootDir, "pcm", "metadata.base.json"))
	if err != nil {
		return nil, err
	}
	logrus.Debugf("Loaded base metadata for %s (kicad_version %s)", base.Identifier, base.KicadVersion)

	contentDir := filepath.Join(cfg.RootDir, contentDirName)
	info, err := os.Stat(contentDir)
	if err != nil {
		return nil, &models.BuildError{Type: models.ErrStage, Path: contentDir, Err: err}
	}
	if !info.IsDir() {
		return nil, &models.BuildError{Type: models.ErrStage, Path: contentDir, Err: fmt.Errorf("not a directory")}
	}

	packageFilename := fmt.Sprintf("%s_v%s_pcm.zip", base.Identifier, cfg.Version)

	distDir := filepath.Join(cfg.RootDir, distDirName)
	releasesDir := filepath.Join(distDir, releasesDirName)
	if err := utils.RecreateDir(distDir); err != nil {
		return nil, &models.BuildError{Type: models.ErrFileOp, Path: distDir, Err: err}
	}
	if err := utils.EnsureDir(releasesDir); err != nil {
		return nil, &models.BuildError{Type: models.ErrFileOp, Path: releasesDir, Err: err}
	}

	version := models.Version{
		Version:      cfg.Version,
		Status:       cfg.Status,
		KicadVersion: base.KicadVersion,
	}

	packagePath := filepath.Join(releasesDir, packageFilename)
	installSize, err := b.stageAndArchive(ctx, contentDir, base, version, packagePath)
	if err != nil {
		return nil, err
	}

	checksum, err := utils.CalculateChecksum(packagePath)
	if err != nil {
		return nil, &models.BuildError{Type: models.ErrFileOp, Path: packagePath, Err: err}
	}
	logrus.Infof("Archived %s (%d bytes, sha256 %s)", packageFilename, checksum.Size, checksum.SHA256)

	version.DownloadSHA256 = checksum.SHA256
	version.DownloadURL = ReleaseDownloadURL(cfg.Owner, cfg.Repo, cfg.Version, packageFilename)
	version.DownloadSize = checksum.Size
	version.InstallSize = installSize

	repositoryURL, err := b.emitIndexes(ctx, cfg, base, version, distDir)
	if err != nil {
		return nil, err
	}

	return &Result{
		PackagePath:   packagePath,
		RepositoryURL: repositoryURL,
	}, nil
}

// stageAndArchive copies the content tree into a temporary staging
// area, injects the shipped metadata file and archives the result. The
// staging area is removed whether or not archiving succeeds. Returns
// the uncompressed size of the staged content, measured before the
// metadata file is injected.
func (b *Builder) stageAndArchive(ctx context.Context, contentDir string, base *metadata.Base, version models.Version, outPath string) (int64, error) {
	tempDir, err := os.MkdirTemp("", "pcm-build-")
	if err != nil {
		return 0, &models.BuildError{Type: models.ErrStage, Err: err}
	}
	defer os.RemoveAll(tempDir)

	stageDir := filepath.Join(tempDir, "package-root")
	logrus.Debugf("Staging %s into %s", contentDir, stageDir)
	if err := utils.CopyTree(contentDir, stageDir); err != nil {
		return 0, &models.BuildError{Type: models.ErrStage, Path: contentDir, Err: err}
	}

	installSize, err := utils.DirSize(stageDir)
	if err != nil {
		return 0, &models.BuildError{Type: models.ErrStage, Path: stageDir, Err: err}
	}

	record, err := base.PackageRecord([]models.ShippedVersion{version.Shipped()})
	if err != nil {
		return 0, &models.BuildError{Type: models.ErrMetadata, Err: err}
	}
	data, err := renderJSON(record)
	if err != nil {
		return 0, &models.BuildError{Type: models.ErrMetadata, Err: err}
	}
	if err := utils.WriteFile(filepath.Join(stageDir, packageMetadataName), data, 0644); err != nil {
		return 0, &models.BuildError{Type: models.ErrStage, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if err := archive.WriteDirZip(stageDir, outPath); err != nil {
		return 0, &models.BuildError{Type: models.ErrArchive, Path: outPath, Err: err}
	}

	return installSize, nil
}

// emitIndexes writes packages.json, the empty resources archive and
// repository.json, hashing each file after its final byte is on disk.
func (b *Builder) emitIndexes(ctx context.Context, cfg *models.BuildConfig, base *metadata.Base, version models.Version, distDir string) (string, error) {
	record, err := base.PackageRecord([]models.Version{version})
	if err != nil {
		return "", &models.BuildError{Type: models.ErrIndexGen, Err: err}
	}

	index := models.PackagesIndex{Packages: []map[string]json.RawMessage{record}}
	packagesData, err := renderJSON(index)
	if err != nil {
		return "", &models.BuildError{Type: models.ErrIndexGen, Err: err}
	}

	packagesPath := filepath.Join(distDir, packagesIndexName)
	if err := b.writeIndex(packagesPath, packagesData); err != nil {
		return "", err
	}
	logrus.Infof("Wrote %s", packagesIndexName)

	// Reserved for future resource bundling, currently always empty
	resourcesPath := filepath.Join(distDir, resourcesName)
	if err := archive.WriteEmptyZip(resourcesPath); err != nil {
		return "", &models.BuildError{Type: models.ErrArchive, Path: resourcesPath, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	packagesResource, err := resourceFor(packagesPath, RawIndexURL(cfg.Owner, cfg.Repo, packagesIndexName), now)
	if err != nil {
		return "", err
	}
	resourcesResource, err := resourceFor(resourcesPath, RawIndexURL(cfg.Owner, cfg.Repo, resourcesName), now)
	if err != nil {
		return "", err
	}

	repository := models.Repository{
		Schema:     models.RepositorySchema,
		Name:       fmt.Sprintf("%s PCM repository", cfg.Repo),
		Maintainer: base.Maintainer(),
		Packages:   packagesResource,
		Resources:  resourcesResource,
	}

	repositoryData, err := renderJSON(repository)
	if err != nil {
		return "", &models.BuildError{Type: models.ErrIndexGen, Err: err}
	}
	repositoryPath := filepath.Join(distDir, repositoryName)
	if err := b.writeIndex(repositoryPath, repositoryData); err != nil {
		return "", err
	}
	logrus.Infof("Wrote %s", repositoryName)

	// Publish the verification key next to the signed indexes
	if b.signer != nil {
		pub, err := b.signer.GetPublicKey()
		if err != nil {
			return "", &models.BuildError{Type: models.ErrSigning, Err: err}
		}
		pubPath := filepath.Join(distDir, publicKeyName)
		if err := utils.WriteFile(pubPath, pub, 0644); err != nil {
			return "", &models.BuildError{Type: models.ErrFileOp, Path: pubPath, Err: err}
		}
		logrus.Infof("Wrote %s", publicKeyName)
	}

	return RawIndexURL(cfg.Owner, cfg.Repo, repositoryName), nil
}

// writeIndex writes an index file and, when a signer is configured, a
// detached signature next to it.
func (b *Builder) writeIndex(path string, data []byte) error {
	if err := utils.WriteFile(path, data, 0644); err != nil {
		return &models.BuildError{Type: models.ErrFileOp, Path: path, Err: err}
	}

	if b.signer == nil {
		return nil
	}

	sig, err := b.signer.SignDetached(data)
	if err != nil {
		return &models.BuildError{Type: models.ErrSigning, Path: path, Err: err}
	}
	if err := utils.WriteFile(path+".asc", sig, 0644); err != nil {
		return &models.BuildError{Type: models.ErrFileOp, Path: path + ".asc", Err: err}
	}
	logrus.Debugf("Signed %s", filepath.Base(path))
	return nil
}

// resourceFor hashes a just-written file and stamps its descriptor
func resourceFor(path, url string, now time.Time) (models.Resource, error) {
	checksum, err := utils.CalculateChecksum(path)
	if err != nil {
		return models.Resource{}, &models.BuildError{Type: models.ErrFileOp, Path: path, Err: err}
	}

	return models.Resource{
		URL:             url,
		SHA256:          checksum.SHA256,
		UpdateTimeUTC:   now.Format(updateTimeLayout),
		UpdateTimestamp: now.Unix(),
	}, nil
}

func renderJSON(v interface{}) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

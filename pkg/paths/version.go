package paths

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/arthur-debert/nulink/pkg/errors"
)

// NormalizeVersion maps a declared version to the version folder name NuGet
// installs the package under. Exact ranges ([1.2.3]) and ranges with an
// inclusive lower bound map to that bound. Floating versions and ranges
// without an inclusive lower bound cannot be mapped without resolving
// against a feed and are rejected.
func NormalizeVersion(declared string) (string, error) {
	v := strings.TrimSpace(declared)
	if v == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty version")
	}

	if strings.HasPrefix(v, "[") || strings.HasPrefix(v, "(") {
		lower, err := lowerBound(v)
		if err != nil {
			return "", err
		}
		v = lower
	}

	if strings.Contains(v, "*") {
		return "", errors.Newf(errors.ErrInvalidInput, "floating version %q cannot be mapped to an install folder", declared)
	}

	// build metadata is not part of the folder name
	if i := strings.Index(v, "+"); i >= 0 {
		v = v[:i]
	}

	core, pre := v, ""
	if i := strings.Index(v, "-"); i >= 0 {
		core, pre = v[:i], v[i+1:]
	}

	parts := strings.Split(core, ".")
	if len(parts) == 4 {
		revision, err := strconv.Atoi(parts[3])
		if err != nil {
			return "", errors.Newf(errors.ErrInvalidInput, "invalid version %q", declared)
		}
		if revision != 0 {
			return fourPartVersion(parts, pre, declared)
		}
		core = strings.Join(parts[:3], ".")
	}

	candidate := core
	if pre != "" {
		candidate += "-" + pre
	}
	sv, err := semver.NewVersion(candidate)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "invalid version %q", declared)
	}

	normalized := fmt.Sprintf("%d.%d.%d", sv.Major(), sv.Minor(), sv.Patch())
	if sv.Prerelease() != "" {
		normalized += "-" + sv.Prerelease()
	}
	return strings.ToLower(normalized), nil
}

func lowerBound(r string) (string, error) {
	inclusive := strings.HasPrefix(r, "[")
	if len(r) < 2 || !strings.ContainsAny(r[len(r)-1:], "])") {
		return "", errors.Newf(errors.ErrInvalidInput, "invalid version range %q", r)
	}
	body := r[1 : len(r)-1]

	lower := body
	if i := strings.Index(body, ","); i >= 0 {
		lower = body[:i]
	}
	lower = strings.TrimSpace(lower)

	if lower == "" || !inclusive {
		return "", errors.Newf(errors.ErrInvalidInput, "version range %q has no inclusive lower bound", r)
	}
	return lower, nil
}

func fourPartVersion(parts []string, pre, declared string) (string, error) {
	nums := make([]string, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return "", errors.Newf(errors.ErrInvalidInput, "invalid version %q", declared)
		}
		nums[i] = strconv.Itoa(n)
	}
	normalized := strings.Join(nums, ".")
	if pre != "" {
		normalized += "-" + pre
	}
	return strings.ToLower(normalized), nil
}

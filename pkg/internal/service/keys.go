package service

import "fmt"

// Object store key layout. Every key is prefixed with the tenant so a
// prefix listing per tenant is possible and cross-tenant collisions are
// structurally impossible.
//
//	t/{tenant}/q/{upload}/source                    staged bytes, pre-verification
//	t/{tenant}/obj/{object}/v/{version}/source      canonical immutable bytes
//	t/{tenant}/obj/{object}/v/{version}/preview     derived artifacts
//	t/{tenant}/obj/{object}/v/{version}/thumb/{n}
//	t/{tenant}/obj/{object}/v/{version}/text

func quarantineKey(tenantID, uploadID string) string {
	return fmt.Sprintf("t/%s/q/%s/source", tenantID, uploadID)
}

func canonicalPrefix(tenantID, objectID, versionID string) string {
	return fmt.Sprintf("t/%s/obj/%s/v/%s", tenantID, objectID, versionID)
}

func canonicalSourceKey(tenantID, objectID, versionID string) string {
	return canonicalPrefix(tenantID, objectID, versionID) + "/source"
}

func canonicalPreviewKey(tenantID, objectID, versionID string) string {
	return canonicalPrefix(tenantID, objectID, versionID) + "/preview"
}

func canonicalThumbKey(tenantID, objectID, versionID string, page int) string {
	return fmt.Sprintf("%s/thumb/%d", canonicalPrefix(tenantID, objectID, versionID), page)
}

func canonicalTextKey(tenantID, objectID, versionID string) string {
	return canonicalPrefix(tenantID, objectID, versionID) + "/text"
}

// SPDX-License-Identifier: Unlicense OR MIT

package gl

type (
	Attrib uint
	Enum   uint
)

const (
	ALL_BARRIER_BITS                   = 0xffffffff
	ALWAYS                             = 0x207
	ARRAY_BUFFER                       = 0x8892
	BACK                               = 0x0405
	BLEND                              = 0xbe2
	BUFFER_UPDATE_BARRIER_BIT          = 0x200
	BYTE                               = 0x1400
	CCW                                = 0x901
	CLAMP_TO_EDGE                      = 0x812f
	COLOR_ATTACHMENT0                  = 0x8ce0
	COLOR_BUFFER_BIT                   = 0x4000
	COMPARE_REF_TO_TEXTURE             = 0x884e
	COMPILE_STATUS                     = 0x8b81
	COMPUTE_SHADER                     = 0x91B9
	CULL_FACE                          = 0xb44
	CW                                 = 0x900
	DEBUG_OUTPUT                       = 0x92e0
	DEBUG_OUTPUT_SYNCHRONOUS           = 0x8242
	DEBUG_SEVERITY_HIGH                = 0x9146
	DEBUG_SEVERITY_LOW                 = 0x9148
	DEBUG_SEVERITY_MEDIUM              = 0x9147
	DEBUG_SEVERITY_NOTIFICATION        = 0x826b
	DEBUG_SOURCE_API                   = 0x8246
	DEBUG_SOURCE_APPLICATION           = 0x824a
	DEBUG_SOURCE_OTHER                 = 0x824b
	DEBUG_SOURCE_SHADER_COMPILER       = 0x8248
	DEBUG_SOURCE_THIRD_PARTY           = 0x8249
	DEBUG_SOURCE_WINDOW_SYSTEM         = 0x8247
	DEBUG_TYPE_DEPRECATED_BEHAVIOR     = 0x824d
	DEBUG_TYPE_ERROR                   = 0x824c
	DEBUG_TYPE_MARKER                  = 0x8268
	DEBUG_TYPE_OTHER                   = 0x8251
	DEBUG_TYPE_PERFORMANCE             = 0x8250
	DEBUG_TYPE_PORTABILITY             = 0x824f
	DEBUG_TYPE_UNDEFINED_BEHAVIOR      = 0x824e
	DEPTH_ATTACHMENT                   = 0x8d00
	DEPTH_BUFFER_BIT                   = 0x100
	DEPTH_COMPONENT                    = 0x1902
	DEPTH_COMPONENT32F                 = 0x8cac
	DEPTH_TEST                         = 0xb71
	DRAW_FRAMEBUFFER                   = 0x8ca9
	DST_ALPHA                          = 0x304
	DST_COLOR                          = 0x306
	DYNAMIC_DRAW                       = 0x88e8
	ELEMENT_ARRAY_BUFFER               = 0x8893
	EQUAL                              = 0x202
	EXTENSIONS                         = 0x1f03
	FALSE                              = 0
	FLOAT                              = 0x1406
	FRAGMENT_SHADER                    = 0x8b30
	FRAMEBUFFER                        = 0x8d40
	FRAMEBUFFER_BARRIER_BIT            = 0x400
	FRAMEBUFFER_BINDING                = 0x8ca6
	FRAMEBUFFER_COMPLETE               = 0x8cd5
	FRONT                              = 0x404
	FRONT_AND_BACK                     = 0x408
	GEQUAL                             = 0x206
	GREATER                            = 0x204
	HALF_FLOAT                         = 0x140b
	INFO_LOG_LENGTH                    = 0x8b84
	INT                                = 0x1404
	LEQUAL                             = 0x203
	LESS                               = 0x201
	LINEAR                             = 0x2601
	LINEAR_MIPMAP_LINEAR               = 0x2703
	LINEAR_MIPMAP_NEAREST              = 0x2701
	LINES                              = 0x1
	LINE_STRIP                         = 0x3
	LINK_STATUS                        = 0x8b82
	MAX_COMBINED_TEXTURE_IMAGE_UNITS   = 0x8b4d
	MAX_SHADER_STORAGE_BUFFER_BINDINGS = 0x90dd
	MAX_TEXTURE_SIZE                   = 0xd33
	MAX_UNIFORM_BUFFER_BINDINGS        = 0x8a2f
	MIRRORED_REPEAT                    = 0x8370
	NEAREST                            = 0x2600
	NEAREST_MIPMAP_LINEAR              = 0x2702
	NEAREST_MIPMAP_NEAREST             = 0x2700
	NEVER                              = 0x200
	NONE                               = 0x0
	NOTEQUAL                           = 0x205
	NO_ERROR                           = 0x0
	NUM_EXTENSIONS                     = 0x821d
	ONE                                = 0x1
	ONE_MINUS_DST_ALPHA                = 0x305
	ONE_MINUS_DST_COLOR                = 0x307
	ONE_MINUS_SRC_ALPHA                = 0x303
	ONE_MINUS_SRC_COLOR                = 0x301
	POINTS                             = 0x0
	READ_FRAMEBUFFER                   = 0x8ca8
	READ_ONLY                          = 0x88b8
	READ_WRITE                         = 0x88ba
	RENDERER                           = 0x1f01
	REPEAT                             = 0x2901
	RGBA                               = 0x1908
	RGBA16F                            = 0x881a
	RGBA32F                            = 0x8814
	RGBA8                              = 0x8058
	SHADER_IMAGE_ACCESS_BARRIER_BIT    = 0x20
	SHADER_STORAGE_BARRIER_BIT         = 0x2000
	SHADER_STORAGE_BUFFER              = 0x90d2
	SHADING_LANGUAGE_VERSION           = 0x8b8c
	SHORT                              = 0x1402
	SRC_ALPHA                          = 0x302
	SRC_COLOR                          = 0x300
	SRGB8_ALPHA8                       = 0x8c43
	STATIC_DRAW                        = 0x88e4
	TEXTURE0                           = 0x84c0
	TEXTURE_2D                         = 0xde1
	TEXTURE_COMPARE_FUNC               = 0x884d
	TEXTURE_COMPARE_MODE               = 0x884c
	TEXTURE_FETCH_BARRIER_BIT          = 0x8
	TEXTURE_MAG_FILTER                 = 0x2800
	TEXTURE_MIN_FILTER                 = 0x2801
	TEXTURE_WRAP_S                     = 0x2802
	TEXTURE_WRAP_T                     = 0x2803
	TRIANGLES                          = 0x4
	TRIANGLE_STRIP                     = 0x5
	TRUE                               = 1
	UNIFORM_BARRIER_BIT                = 0x4
	UNIFORM_BUFFER                     = 0x8a11
	UNPACK_ALIGNMENT                   = 0xcf5
	UNSIGNED_BYTE                      = 0x1401
	UNSIGNED_INT                       = 0x1405
	UNSIGNED_SHORT                     = 0x1403
	VENDOR                             = 0x1f00
	VERSION                            = 0x1f02
	VERTEX_ATTRIB_ARRAY_BARRIER_BIT    = 0x1
	VERTEX_SHADER                      = 0x8b31
	WRITE_ONLY                         = 0x88b9
	ZERO                               = 0x0
)
